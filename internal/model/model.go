package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&StoreInfo{},
	&Slot{},
}

////////////////////////
// SYSTEM MODELS
////////////////////////

// StoreInfo records which application created the database
type StoreInfo struct {
	gorm.Model
	Application string `json:"application" gorm:"size:127"`
	Schema      uint   `json:"schema"`
}

func (*StoreInfo) TableName() string {
	return "store_infos"
}

// CurrentSchema is written to StoreInfo when a database is first set up.
const CurrentSchema = 1

////////////////////////
// COLLECTION SLOTS
////////////////////////

// Slot is one durable collection: the whole JSON array under a fixed key.
type Slot struct {
	Key       string         `json:"key" gorm:"primaryKey;size:127"`
	Payload   datatypes.JSON `json:"payload"`
	UpdatedAt time.Time      `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (*Slot) TableName() string {
	return "slots"
}
