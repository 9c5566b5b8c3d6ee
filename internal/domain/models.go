package domain

import "time"

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusPreparing  OrderStatus = "preparing"
	StatusDelivering OrderStatus = "delivering"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentWallet PaymentMethod = "wallet"
)

type Promotion struct {
	ID          string `json:"id"`
	Type        string `json:"type"` // discount, gift, freeDelivery
	Description string `json:"description"`
}

type Merchant struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Logo         string      `json:"logo,omitempty"`
	CoverImage   string      `json:"coverImage,omitempty"`
	Cuisine      []string    `json:"cuisine,omitempty"`
	Rating       float64     `json:"rating"`
	DeliveryTime int         `json:"deliveryTime"`
	DeliveryFee  float64     `json:"deliveryFee"`
	MinOrder     float64     `json:"minOrder"`
	Distance     float64     `json:"distance"`
	Promotions   []Promotion `json:"promotions,omitempty"`
	IsNew        bool        `json:"isNew,omitempty"`
	AveragePrice float64     `json:"averagePrice,omitempty"`
	Email        string      `json:"email,omitempty"`
	Phone        string      `json:"phone,omitempty"`
	Address      string      `json:"address,omitempty"`
	Description  string      `json:"description,omitempty"`
	IsActive     bool        `json:"isActive"`

	// Password is the mock credential. It lives in the stored record only and
	// must be stripped before a merchant leaves the service layer.
	Password string `json:"password,omitempty"`
}

type MenuItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Price        float64 `json:"price"`
	Image        string  `json:"image,omitempty"`
	Category     string  `json:"category"`
	IsSpicy      bool    `json:"isSpicy,omitempty"`
	IsPopular    bool    `json:"isPopular,omitempty"`
	IsVegetarian bool    `json:"isVegetarian,omitempty"`
	Stock        *int    `json:"stock,omitempty"`
	IsAvailable  bool    `json:"isAvailable"`
}

// CartItem is a menu item snapshot plus the quantity chosen by the customer.
// Once it lands on an order it is frozen: later menu edits do not touch it.
type CartItem struct {
	MenuItem
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

type Order struct {
	ID                    string        `json:"id"`
	MerchantID            string        `json:"merchantId"`
	MerchantName          string        `json:"merchantName,omitempty"`
	UserID                string        `json:"userId"`
	Items                 []CartItem    `json:"items"`
	TotalPrice            float64       `json:"totalPrice"`
	DeliveryFee           float64       `json:"deliveryFee"`
	Status                OrderStatus   `json:"status"`
	CreatedAt             time.Time     `json:"createdAt"`
	EstimatedDeliveryTime string        `json:"estimatedDeliveryTime,omitempty"`
	Address               Address       `json:"address"`
	PaymentMethod         PaymentMethod `json:"paymentMethod"`
}

type Address struct {
	ID            string `json:"id"`
	Label         string `json:"label,omitempty"`
	RecipientName string `json:"recipientName"`
	Phone         string `json:"phone"`
	Province      string `json:"province"`
	City          string `json:"city"`
	District      string `json:"district"`
	Address       string `json:"address"`
	ZipCode       string `json:"zipCode,omitempty"`
	IsDefault     bool   `json:"isDefault"`
}

type User struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone"`
	Avatar    string       `json:"avatar,omitempty"`
	Gender    string       `json:"gender,omitempty"`
	Birthday  string       `json:"birthday,omitempty"`
	Addresses []Address    `json:"addresses,omitempty"`
	Settings  UserSettings `json:"settings"`

	// Same mock-only shortcut as Merchant.Password.
	Password string `json:"password,omitempty"`
}

type UserSettings struct {
	Notifications NotificationSettings `json:"notifications"`
	Privacy       PrivacySettings      `json:"privacy"`
}

type NotificationSettings struct {
	Email        bool `json:"email"`
	SMS          bool `json:"sms"`
	Promotions   bool `json:"promotions"`
	OrderUpdates bool `json:"orderUpdates"`
}

type PrivacySettings struct {
	ShowProfile bool `json:"showProfile"`
	ShowOrders  bool `json:"showOrders"`
	ShowReviews bool `json:"showReviews"`
}
