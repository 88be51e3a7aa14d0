package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"farmsync/internal/domain/model"
)

// Named markup placeholders a targets file may use instead of a literal
// fraction. They resolve against the environment-provided markups.
const (
	markupMember = "MEMBER_MARKUP"
	markupGuest  = "GUEST_MARKUP"
)

type targetsFile struct {
	PriceLists []targetEntry `yaml:"price_lists"`
}

type targetEntry struct {
	Name   string `yaml:"name"`
	ID     int64  `yaml:"id"`
	Markup string `yaml:"markup"`
}

// LoadTargets reads the ordered price list targets from a YAML file. File
// order is preserved: it is the order lists are synced and logged in.
func LoadTargets(path string, memberMarkup, guestMarkup float64) ([]model.PriceListTarget, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read price lists file: %w", err)
	}
	return ParseTargets(raw, memberMarkup, guestMarkup)
}

func ParseTargets(raw []byte, memberMarkup, guestMarkup float64) ([]model.PriceListTarget, error) {
	var file targetsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse price lists file: %w", err)
	}
	if len(file.PriceLists) == 0 {
		return nil, fmt.Errorf("price lists file has no price_lists entries")
	}

	targets := make([]model.PriceListTarget, 0, len(file.PriceLists))
	for _, entry := range file.PriceLists {
		if entry.Name == "" || entry.ID == 0 {
			return nil, fmt.Errorf("price list entry needs both name and id: %+v", entry)
		}
		markup, err := resolveMarkup(entry.Markup, memberMarkup, guestMarkup)
		if err != nil {
			return nil, fmt.Errorf("price list %q: %w", entry.Name, err)
		}
		targets = append(targets, model.PriceListTarget{
			Name:           entry.Name,
			ExternalListID: entry.ID,
			MarkupFraction: markup,
		})
	}
	return targets, nil
}

func resolveMarkup(value string, memberMarkup, guestMarkup float64) (float64, error) {
	switch value {
	case markupMember:
		return memberMarkup, nil
	case markupGuest:
		return guestMarkup, nil
	case "":
		return 0, fmt.Errorf("missing markup")
	}
	markup, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid markup %q", value)
	}
	return markup, nil
}
