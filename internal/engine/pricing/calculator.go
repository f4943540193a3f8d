// Package pricing содержит чистый расчёт цены групповых бронирований.
package pricing

import (
	"math"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Price вычисляет итоговую цену группового бронирования.
// Результат округляется до 2 знаков и никогда не бывает отрицательным.
// Неизвестный тип правила трактуется как per_person_multiply — это
// задокументированный fallback, а не ошибка
func Price(basePricePerPerson float64, personCount int, rule domain.GroupPricingRule) float64 {
	if personCount < 1 {
		personCount = 1
	}

	var total float64

	switch rule.Type {
	case domain.PricingFixedDiscountPerPerson:
		perPerson := basePricePerPerson - rule.Amount
		if perPerson < 0 {
			perPerson = 0
		}
		total = perPerson * float64(personCount)

	case domain.PricingPercentageDiscountTotal:
		total = basePricePerPerson * float64(personCount) * (1 - rule.Amount/100)

	default:
		total = basePricePerPerson * float64(personCount)
	}

	if total < 0 {
		total = 0
	}

	return math.Round(total*100) / 100
}
