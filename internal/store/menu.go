package store

import (
	"context"

	"gorm.io/gorm"

	"hostel-portal-backend/internal/model"
)

// weekDays fixes the ordering of menu rows in API responses.
var weekDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// WeeklyMenu returns the mess menu in Monday..Sunday order.
func (s *gormStore) WeeklyMenu(ctx context.Context) ([]model.MenuDay, error) {
	var days []model.MenuDay
	if err := s.db.WithContext(ctx).Find(&days).Error; err != nil {
		return nil, err
	}

	byDay := make(map[string]model.MenuDay, len(days))
	for _, d := range days {
		byDay[d.Day] = d
	}

	ordered := make([]model.MenuDay, 0, len(weekDays))
	for _, day := range weekDays {
		if d, ok := byDay[day]; ok {
			ordered = append(ordered, d)
		}
	}
	return ordered, nil
}

// ReplaceWeeklyMenu swaps in a full week of menu rows atomically.
func (s *gormStore) ReplaceWeeklyMenu(ctx context.Context, days []model.MenuDay) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.MenuDay{}).Error; err != nil {
			return err
		}
		if len(days) == 0 {
			return nil
		}
		return tx.Create(&days).Error
	})
}

// SeedDefaultMenu inserts the default weekly menu when the table is
// empty, so a fresh deployment serves something sensible.
func SeedDefaultMenu(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.MenuDay{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(defaultWeeklyMenu()).Error
}

func defaultWeeklyMenu() []model.MenuDay {
	return []model.MenuDay{
		{Day: "Monday", Morning: "Coffee, Milk", Breakfast: "Idli, Sambar, Coconut Chutney",
			Lunch: "Sambar Rice, Rasam, Poriyal, Kootu, Papad, Curd", Evening: "Tea, Milk",
			Dinner: "Puliyodarai, Vadai, Rice, Poriyal, Mor Kuzhambu"},
		{Day: "Tuesday", Morning: "Coffee, Milk", Breakfast: "Puri, Masala Kuzhambu",
			Lunch: "Jeera Rice, Dal, Poriyal, Rasam, Papad, Curd", Evening: "Tea, Milk",
			Dinner: "Aviyal, Onion Sambar, Rice, Poriyal"},
		{Day: "Wednesday", Morning: "Coffee, Milk", Breakfast: "Rava Upma, Coconut Chutney",
			Lunch: "Curd Rice, Okra Poriyal, Dal, Papad, Pickle", Evening: "Tea, Milk",
			Dinner: "Kootu, Mor Kuzhambu, Rice, Poriyal, Papad"},
		{Day: "Thursday", Morning: "Coffee, Milk", Breakfast: "Paniyaram, Coconut Chutney",
			Lunch: "Lemon Rice, Dal, Poriyal, Papad, Curd", Evening: "Tea, Milk",
			Dinner: "Vathal Kuzhambu, Rice, Poriyal, Mor Kuzhambu"},
		{Day: "Friday", Morning: "Coffee, Milk", Breakfast: "Puttu, Kara Chutney",
			Lunch: "Tomato Rice, Dal, Poriyal, Papad, Curd", Evening: "Tea, Milk",
			Dinner: "Paruppu Kuzhambu, Rice, Poriyal, Rasam"},
		{Day: "Saturday", Morning: "Coffee, Milk", Breakfast: "Masala Dosa, Sambar, Chutney",
			Lunch: "Tamarind Rice, Dal, Poriyal, Papad, Curd", Evening: "Tea, Milk",
			Dinner: "Butter Paneer, Rice, Poriyal, Mor Kuzhambu"},
		{Day: "Sunday", Morning: "Coffee, Milk", Breakfast: "Pongal, Ven Pongal, Sweet Pongal",
			Lunch: "Special Meal: Dal, Sambar, Rasam, Three Poriyal, Papad, Vadai, Payasam", Evening: "Tea, Milk",
			Dinner: "Green Gram Kuzhambu, Rice, Poriyal, Mor Kuzhambu"},
	}
}
