package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LocationModel is the embedded geotag of an issue document.
type LocationModel struct {
	Latitude  float64 `bson:"latitude"`
	Longitude float64 `bson:"longitude"`
	Address   string  `bson:"address"`
}

// IssueModel is the document stored in the issues collection.
type IssueModel struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	CitizenID   string               `bson:"citizenId"`
	IssueType   string               `bson:"issueType"`
	Title       string               `bson:"title"`
	Description string               `bson:"description"`
	Status      string               `bson:"status"`
	Location    LocationModel        `bson:"location"`
	Media       []primitive.ObjectID `bson:"media,omitempty"`
	HandledBy   string               `bson:"handledBy,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

// MediaModel is the document stored in the multimedia collection.
type MediaModel struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	IssueID   primitive.ObjectID `bson:"issueID"`
	FileType  string             `bson:"fileType"`
	URL       string             `bson:"url"`
	Filename  string             `bson:"filename"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}
