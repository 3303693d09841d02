package domain

// Menu prices are bounded by canteen policy.
const (
	MinMenuPrice int64 = 50
	MaxMenuPrice int64 = 100
)

type MenuItem struct {
	ID          string `json:"id" gorm:"primaryKey;type:char(36)"`
	Name        string `json:"name" gorm:"not null;index"`
	Price       int64  `json:"price" gorm:"not null"`
	ImageURL    string `json:"image_url"`
	IsVeg       bool   `json:"is_veg" gorm:"not null;default:false"`
	IsAvailable bool   `json:"is_available" gorm:"not null;default:true"`
}

func (MenuItem) TableName() string {
	return "menu"
}

func ValidMenuPrice(price int64) bool {
	return price >= MinMenuPrice && price <= MaxMenuPrice
}
