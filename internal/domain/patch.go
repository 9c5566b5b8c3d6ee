package domain

// Patch structs carry partial updates. A nil field means "leave as is", so a
// merge can never wipe a field the caller did not mention.

type MerchantPatch struct {
	Name         *string   `json:"name,omitempty"`
	Logo         *string   `json:"logo,omitempty"`
	CoverImage   *string   `json:"coverImage,omitempty"`
	Cuisine      *[]string `json:"cuisine,omitempty"`
	Rating       *float64  `json:"rating,omitempty"`
	DeliveryTime *int      `json:"deliveryTime,omitempty"`
	DeliveryFee  *float64  `json:"deliveryFee,omitempty"`
	MinOrder     *float64  `json:"minOrder,omitempty"`
	Distance     *float64  `json:"distance,omitempty"`
	AveragePrice *float64  `json:"averagePrice,omitempty"`
	Email        *string   `json:"email,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	Address      *string   `json:"address,omitempty"`
	Description  *string   `json:"description,omitempty"`
	IsActive     *bool     `json:"isActive,omitempty"`
}

func (p MerchantPatch) Apply(m Merchant) Merchant {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Logo != nil {
		m.Logo = *p.Logo
	}
	if p.CoverImage != nil {
		m.CoverImage = *p.CoverImage
	}
	if p.Cuisine != nil {
		m.Cuisine = append([]string(nil), (*p.Cuisine)...)
	}
	if p.Rating != nil {
		m.Rating = *p.Rating
	}
	if p.DeliveryTime != nil {
		m.DeliveryTime = *p.DeliveryTime
	}
	if p.DeliveryFee != nil {
		m.DeliveryFee = *p.DeliveryFee
	}
	if p.MinOrder != nil {
		m.MinOrder = *p.MinOrder
	}
	if p.Distance != nil {
		m.Distance = *p.Distance
	}
	if p.AveragePrice != nil {
		m.AveragePrice = *p.AveragePrice
	}
	if p.Email != nil {
		m.Email = *p.Email
	}
	if p.Phone != nil {
		m.Phone = *p.Phone
	}
	if p.Address != nil {
		m.Address = *p.Address
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.IsActive != nil {
		m.IsActive = *p.IsActive
	}
	return m
}

type MenuItemPatch struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	Image        *string  `json:"image,omitempty"`
	Category     *string  `json:"category,omitempty"`
	IsSpicy      *bool    `json:"isSpicy,omitempty"`
	IsPopular    *bool    `json:"isPopular,omitempty"`
	IsVegetarian *bool    `json:"isVegetarian,omitempty"`
	Stock        *int     `json:"stock,omitempty"`
	IsAvailable  *bool    `json:"isAvailable,omitempty"`
}

func (p MenuItemPatch) Apply(item MenuItem) MenuItem {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Image != nil {
		item.Image = *p.Image
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.IsSpicy != nil {
		item.IsSpicy = *p.IsSpicy
	}
	if p.IsPopular != nil {
		item.IsPopular = *p.IsPopular
	}
	if p.IsVegetarian != nil {
		item.IsVegetarian = *p.IsVegetarian
	}
	if p.Stock != nil {
		stock := *p.Stock
		item.Stock = &stock
	}
	if p.IsAvailable != nil {
		item.IsAvailable = *p.IsAvailable
	}
	return item
}
