package services

import (
	"qc-laptop/models"
	"qc-laptop/types"
)

var hardwareItems = []string{
	"Periksa kondisi fisik produk",
	"Baut terpasang rapi, kencang, dan tidak cacat",
	"Tombol dan lampu power berfungsi dengan baik",
	"LCD tidak cacat, redup, atau blur",
	"Speaker berfungsi dengan suara jernih",
	"SIM terpasang dan terbaca",
	"PIN sesuai dengan label",
	"Port USB berfungsi baik",
	"Port Type-C berfungsi baik",
	"Port HDMI berfungsi baik",
	"Keyboard dan Touchpad berfungsi baik",
	"Kamera berfungsi dengan baik",
	"WiFi dan Bluetooth berfungsi",
}

var softwareItems = []string{
	"Windows sudah aktivasi",
	"Semua driver terinstall dengan benar",
	"Dokumentasi unit",
}

type ChecklistTemplate struct {
	Hardware []string `json:"hardware"`
	Software []string `json:"software"`
}

// Template returns a copy; callers may not mutate the built-in lists.
func Template() ChecklistTemplate {
	return ChecklistTemplate{
		Hardware: append([]string(nil), hardwareItems...),
		Software: append([]string(nil), softwareItems...),
	}
}

// SeedChecklist membuat item pending untuk sesi baru, hardware dulu lalu software.
func SeedChecklist(sessionID types.SnowflakeID) []models.ChecklistItem {
	items := make([]models.ChecklistItem, 0, len(hardwareItems)+len(softwareItems))
	for i, name := range hardwareItems {
		items = append(items, newItem(sessionID, types.CategoryHardware, name, i+1))
	}
	for i, name := range softwareItems {
		items = append(items, newItem(sessionID, types.CategorySoftware, name, i+1))
	}
	return items
}

func newItem(sessionID types.SnowflakeID, cat types.Category, name string, pos int) models.ChecklistItem {
	return models.ChecklistItem{
		QCSessionID: sessionID,
		Category:    cat,
		ItemName:    name,
		Position:    pos,
		Status:      types.ItemPending,
		IsChecked:   false,
	}
}
