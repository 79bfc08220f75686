package sqlitestore

import "time"

// MergeRun is one execution of the merge.
type MergeRun struct {
	ID             uint      `gorm:"primaryKey"`
	RunID          string    `gorm:"size:36;uniqueIndex"`
	StartedAt      time.Time `gorm:"index"`
	MagnitudeLimit *float64
	Records        int
}

// TableName sets the table name.
func (MergeRun) TableName() string { return "merge_runs" }

// StarRow is one emitted record, stored with its emission rank.
type StarRow struct {
	ID             uint `gorm:"primaryKey"`
	MergeRunID     uint `gorm:"index"`
	Rank           int  `gorm:"index"`
	StarID         int
	HD             int    `gorm:"index"`
	BS             int    `gorm:"index"`
	HIP            int    `gorm:"index"`
	Tycho          string `gorm:"size:16;index"`
	GaiaDR2        string `gorm:"size:24;index"`
	RA             float64
	Decl           float64
	RefMagnitude   float64 `gorm:"index"`
	ColorBV        *float64
	Parallax       *float64
	Distance       *float64
	ProperMotion   *float64
	ProperMotionPA *float64
	SourcePosition string `gorm:"size:16"`
	SourceParallax string `gorm:"size:16"`
	Constellation  string `gorm:"size:3"`
	BayerLetter    string `gorm:"size:16"`
	Flamsteed      int
	EnglishNames   string
	CatalogueNames string
	NSV            int
	Variable       bool
	Presence       string

	Magnitudes []MagnitudeRow `gorm:"foreignKey:StarRowID;constraint:OnDelete:CASCADE"`
}

// TableName sets the table name.
func (StarRow) TableName() string { return "stars" }

// MagnitudeRow is one band's magnitude of a star.
type MagnitudeRow struct {
	ID        uint   `gorm:"primaryKey"`
	StarRowID uint   `gorm:"index"`
	Band      string `gorm:"size:2"`
	Value     float64
	Source    string `gorm:"size:16"`
}

// TableName sets the table name.
func (MagnitudeRow) TableName() string { return "star_magnitudes" }
