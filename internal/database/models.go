package database

// ItemRow is the base table shared by every catalog variant.
type ItemRow struct {
	ID              uint   `gorm:"primaryKey;autoIncrement"`
	Title           string `gorm:"not null;index"`
	Year            int    `gorm:"not null"`
	AcquisitionDate string `gorm:"type:text;not null"`
	Kind            string `gorm:"size:20;not null;index"`
}

func (ItemRow) TableName() string {
	return "items"
}

// BookRow extends an ItemRow of kind Book.
type BookRow struct {
	ItemID    uint    `gorm:"primaryKey;autoIncrement:false"`
	ISBN10    string  `gorm:"column:isbn10;size:10;not null"`
	Available bool    `gorm:"not null"`
	Item      ItemRow `gorm:"foreignKey:ItemID;references:ID;constraint:OnDelete:CASCADE"`
}

func (BookRow) TableName() string {
	return "books"
}

// AudiobookRow extends an ItemRow of kind Audiobook.
type AudiobookRow struct {
	ItemID            uint    `gorm:"primaryKey;autoIncrement:false"`
	AvailabilityStart string  `gorm:"type:text;not null"`
	AvailabilityEnd   string  `gorm:"type:text;not null"`
	Item              ItemRow `gorm:"foreignKey:ItemID;references:ID;constraint:OnDelete:CASCADE"`
}

func (AudiobookRow) TableName() string {
	return "audiobooks"
}

// RatingRow is one rating owned by an item. Optional text columns are NULL when empty.
type RatingRow struct {
	ID       uint    `gorm:"primaryKey;autoIncrement"`
	ItemID   uint    `gorm:"not null;index"`
	Score    int     `gorm:"not null"`
	Comment  *string `gorm:"type:text"`
	Keywords *string `gorm:"type:text"`
	UserID   *string `gorm:"column:user_id;size:100"`
	Item     ItemRow `gorm:"foreignKey:ItemID;references:ID;constraint:OnDelete:CASCADE"`
}

func (RatingRow) TableName() string {
	return "ratings"
}
