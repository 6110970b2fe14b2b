package model

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderPaid       OrderStatus = "PAID"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// Valid reports whether s is a recognized order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPaid, OrderProcessing, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further status change is allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// Order is a purchase of a specialist listing, placed either by a registered
// user or by a guest identified through contact fields.
// @Description Order information
type Order struct {
	gorm.Model
	SpecialistID  uint            `json:"specialist_id" gorm:"not null;index" example:"1"`
	UserID        *uint           `json:"user_id" gorm:"index" example:"1"`
	CustomerName  string          `json:"customer_name" gorm:"type:varchar(255)" example:"Tan Mei Ling"`
	CustomerEmail string          `json:"customer_email" gorm:"type:varchar(191)" example:"meiling@example.com"`
	CustomerPhone string          `json:"customer_phone" gorm:"type:varchar(32)" example:"+60123456789"`
	Requirements  string          `json:"requirements" gorm:"type:text"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null" example:"1950.00"`
	Status        OrderStatus     `json:"status" gorm:"type:varchar(16);not null;default:PENDING;index"`
	Specialist    *Specialist     `json:"-" gorm:"foreignKey:SpecialistID"`
	User          *User           `json:"-" gorm:"foreignKey:UserID"`
}

// SpecialistSummary is the read-side projection of a specialist shown next to an order.
type SpecialistSummary struct {
	ID               uint   `json:"id"`
	Title            string `json:"title"`
	Slug             string `json:"slug"`
	SecretaryName    string `json:"secretary_name"`
	SecretaryCompany string `json:"secretary_company"`
	AvatarURL        string `json:"avatar_url"`
}

// UserSummary is the read-side projection of the ordering user.
type UserSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderView is an order with its display joins
// @Description Order with specialist and user summaries
type OrderView struct {
	Order
	Specialist *SpecialistSummary `json:"specialist"`
	User       *UserSummary       `json:"user,omitempty"`
}

// NewOrderView builds the display projection from an order loaded with its
// Specialist and User associations.
func NewOrderView(o Order) OrderView {
	v := OrderView{Order: o}
	if o.Specialist != nil {
		v.Specialist = &SpecialistSummary{
			ID:               o.Specialist.ID,
			Title:            o.Specialist.Title,
			Slug:             o.Specialist.Slug,
			SecretaryName:    o.Specialist.SecretaryName,
			SecretaryCompany: o.Specialist.SecretaryCompany,
			AvatarURL:        o.Specialist.AvatarURL,
		}
	}
	if o.User != nil {
		v.User = &UserSummary{Name: o.User.Name, Email: o.User.Email}
	}
	return v
}
