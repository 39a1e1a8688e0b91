package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"bluemoon-http-service/internal/domain/models"
)

const monthLayout = "2006-01"

// CurrentMonth formats t as YYYY-MM
func CurrentMonth(t time.Time) string {
	return t.Format(monthLayout)
}

// NormalizeMonth validates a YYYY-MM month; empty means the current month
func NormalizeMonth(month string) (string, error) {
	if month == "" {
		return CurrentMonth(time.Now()), nil
	}
	t, err := time.Parse(monthLayout, month)
	if err != nil {
		return "", ErrInvalidMonth
	}
	return t.Format(monthLayout), nil
}

// round2 rounds money to two decimals
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// paginate counts query, then loads the requested page into a models.Page.
// query must carry a Model.
func paginate[T any](query *gorm.DB, p models.PaginationQuery, order string) (*models.Page[T], error) {
	p.Normalize()

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	items := make([]T, 0, p.Limit)
	if err := query.Session(&gorm.Session{}).Order(order).Offset(p.Offset()).Limit(p.Limit).Find(&items).Error; err != nil {
		return nil, err
	}

	return &models.Page[T]{Items: items, Total: total, Page: p.Page, Limit: p.Limit}, nil
}

// notFound converts gorm.ErrRecordNotFound into the service's sentinel
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// duplicate converts a unique-index violation into the service's sentinel. It
// covers the window between an existence check and the insert.
func duplicate(err, sentinel error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return sentinel
	}
	return err
}

// findHousehold loads a household or returns ErrHouseholdNotFound
func findHousehold(db *gorm.DB, id string) (*models.Household, error) {
	var household models.Household
	if err := db.First(&household, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrHouseholdNotFound)
	}
	return &household, nil
}
