package gormdb

import (
	"strconv"
	"time"

	"github.com/gestionstock/product-api/internal/core/domain"
)

type productModel struct {
	ID          int     `gorm:"primaryKey;autoIncrement"`
	Name        string  `gorm:"size:50;not null;index"`
	Description string  `gorm:"type:text"`
	Category    string  `gorm:"size:100"`
	Quantity    int     `gorm:"not null;index"`
	Price       float64 `gorm:"not null;index"`
}

func (productModel) TableName() string { return "products" }

func toProductModel(p domain.Product) productModel {
	return productModel{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Quantity:    p.Quantity,
		Price:       p.Price,
	}
}

func (m productModel) toDomain() domain.Product {
	return domain.Product{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Category:    m.Category,
		Quantity:    m.Quantity,
		Price:       m.Price,
	}
}

type userModel struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"size:32;not null"`
	CreatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

func (m userModel) toDomain() domain.User {
	return domain.User{
		ID:           strconv.FormatUint(uint64(m.ID), 10),
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

type bookModel struct {
	ID     string `gorm:"primaryKey;size:36"`
	Title  string `gorm:"not null"`
	Author string `gorm:"not null"`
}

func (bookModel) TableName() string { return "books" }

func (m bookModel) toDomain() domain.Book {
	return domain.Book{ID: m.ID, Title: m.Title, Author: m.Author}
}
