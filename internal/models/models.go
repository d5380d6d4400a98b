package models

import "time"

type User struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string     `gorm:"uniqueIndex;not null"     json:"email"`
	Name      string     `gorm:"not null"                 json:"name"`
	Password  string     `gorm:"not null"                 json:"-"`
	Purchases []Purchase `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type Product struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string     `gorm:"uniqueIndex;not null"     json:"name"`
	Price     string     `gorm:"not null"                 json:"price"`
	ImageURL  *string    `json:"image_url"`
	Purchases []Purchase `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Purchase snapshots the total at creation time. TotalPrice never changes
// after insert, whatever happens to the product's price later.
type Purchase struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint      `gorm:"index;not null"           json:"user_id"`
	User         User      `json:"user"`
	ProductID    uint      `gorm:"index;not null"           json:"product_id"`
	Product      Product   `json:"product"`
	Quantity     int       `gorm:"not null"                 json:"quantity"`
	TotalPrice   string    `gorm:"not null"                 json:"total_price"`
	PurchaseDate time.Time `gorm:"autoCreateTime"           json:"purchase_date"`
}
