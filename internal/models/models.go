package models

type Product struct {
	ID            int      `gorm:"primaryKey"       json:"id"`
	Name          string   `gorm:"not null"         json:"name"`
	Price         float64  `gorm:"not null"         json:"price"`
	OriginalPrice float64  `json:"originalPrice"`
	Image         string   `json:"image"`
	Rating        int      `json:"rating"`
	Badge         string   `json:"badge"`
	BadgeColor    string   `json:"badgeColor"`
	Description   string   `json:"description"`
	Sizes         []string `gorm:"serializer:json"  json:"sizes"`
	Colors        []string `gorm:"serializer:json"  json:"colors"`
	Category      string   `gorm:"index"            json:"category"`
	InStock       bool     `json:"inStock"`
}

// HasDiscount reports whether the struck-through original price should be
// shown. Equal or lower original prices suppress the discount visual.
func (p Product) HasDiscount() bool {
	return p.OriginalPrice > p.Price
}

type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

type User struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string  `gorm:"unique;not null"          json:"email"`
	PasswordHash string  `gorm:"not null"                 json:"-"`
	Role         string  `gorm:"not null"                 json:"role"`
	Name         string  `json:"name"`
	Phone        string  `json:"phone"`
	Document     string  `json:"document"`
	Address      Address `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Newsletter   bool    `json:"newsletter"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	Role      string `json:"role"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}

type Order struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint    `gorm:"index;not null"           json:"user_id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Address       string  `json:"address"`
	City          string  `json:"city"`
	Zip           string  `json:"zip"`
	PaymentMethod string  `json:"payment_method"`
	Subtotal      float64 `json:"subtotal"`
	Shipping      float64 `json:"shipping"`
	Total         float64 `json:"total"`
	Status        string  `json:"status"`
	TransactionID string  `json:"transaction_id"`
	CreatedAt     int64   `json:"created_at"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint    `gorm:"index;not null"           json:"order_id"`
	ProductID int     `gorm:"not null"                 json:"product_id"`
	Name      string  `json:"name"`
	Size      string  `json:"size"`
	Price     float64 `json:"price"`
	Quantity  uint    `gorm:"check:quantity>0"         json:"quantity"`
}
