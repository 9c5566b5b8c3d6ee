package storage

import (
	"mealdrop/internal/domain"
)

// Seed data returned whenever a collection has never been saved (or its
// snapshot is unreadable). Absence of data is a valid state, not an error.

func SeedMerchants() map[string]domain.Merchant {
	return map[string]domain.Merchant{
		"1": {
			ID:           "1",
			Name:         "金龙餐厅",
			Logo:         "https://images.pexels.com/photos/941861/pexels-photo-941861.jpeg",
			CoverImage:   "https://images.pexels.com/photos/1640772/pexels-photo-1640772.jpeg",
			Cuisine:      []string{"中餐", "粤菜"},
			Rating:       4.8,
			DeliveryTime: 25,
			DeliveryFee:  2.99,
			MinOrder:     15,
			Distance:     1.2,
			Promotions: []domain.Promotion{
				{ID: "p1", Type: "discount", Description: "新用户下单立减20%"},
			},
			IsNew:        true,
			AveragePrice: 50,
			Email:        "merchant@example.com",
			Phone:        "13800138001",
			Address:      "北京市朝阳区某某路123号",
			Description:  "正宗粤菜，传承经典口味",
			IsActive:     true,
			Password:     "password",
		},
		"2": {
			ID:           "2",
			Name:         "意面天堂",
			Logo:         "https://images.pexels.com/photos/1438672/pexels-photo-1438672.jpeg",
			CoverImage:   "https://images.pexels.com/photos/1527603/pexels-photo-1527603.jpeg",
			Cuisine:      []string{"意大利菜", "地中海"},
			Rating:       4.5,
			DeliveryTime: 30,
			DeliveryFee:  1.99,
			MinOrder:     20,
			Distance:     2.5,
			AveragePrice: 65,
			Email:        "pasta@example.com",
			Phone:        "13800138002",
			IsActive:     true,
			Password:     "password",
		},
	}
}

func SeedUsers() map[string]domain.User {
	return map[string]domain.User{
		"user1": {
			ID:       "user1",
			Name:     "张三",
			Email:    "zhangsan@example.com",
			Phone:    "13800138000",
			Gender:   "male",
			Birthday: "1990-01-01",
			Addresses: []domain.Address{
				{
					ID:            "addr1",
					Label:         "家",
					RecipientName: "张三",
					Phone:         "13800138000",
					Province:      "北京市",
					City:          "北京市",
					District:      "朝阳区",
					Address:       "某某路123号",
					ZipCode:       "100000",
					IsDefault:     true,
				},
			},
			Settings: domain.UserSettings{
				Notifications: domain.NotificationSettings{Email: true, SMS: true, OrderUpdates: true},
				Privacy:       domain.PrivacySettings{ShowProfile: true, ShowReviews: true},
			},
			Password: "password",
		},
	}
}

func SeedMenus() map[string][]domain.MenuItem {
	stock := func(n int) *int { return &n }
	return map[string][]domain.MenuItem{
		"1": {
			{
				ID:          "m1",
				Name:        "脆皮烧鸭",
				Description: "选用优质鸭肉，传统粤式烧制，外皮金黄酥脆，肉质鲜嫩多汁",
				Price:       68,
				Image:       "https://images.pexels.com/photos/2611917/pexels-photo-2611917.jpeg",
				Category:    "特色推荐",
				IsPopular:   true,
				Stock:       stock(20),
				IsAvailable: true,
			},
			{
				ID:          "m2",
				Name:        "白切鸡",
				Description: "选用本地散养鸡，配以特制姜葱酱，肉质细嫩，口感鲜美",
				Price:       48,
				Image:       "https://images.pexels.com/photos/2611917/pexels-photo-2611917.jpeg",
				Category:    "特色推荐",
				IsPopular:   true,
				Stock:       stock(15),
				IsAvailable: true,
			},
			{
				ID:          "m3",
				Name:        "蜜汁叉烧",
				Description: "精选五花肉，秘制蜜汁腌制，烧制入味，肥瘦均匀",
				Price:       42,
				Image:       "https://images.pexels.com/photos/2611917/pexels-photo-2611917.jpeg",
				Category:    "粤式烧腊",
				Stock:       stock(25),
				IsAvailable: true,
			},
		},
	}
}
