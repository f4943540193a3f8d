package domain

// GroupPricingType тип правила ценообразования групповых бронирований
type GroupPricingType string

const (
	// PricingPerPersonMultiply базовая цена умножается на число человек
	PricingPerPersonMultiply GroupPricingType = "per_person_multiply"

	// PricingFixedDiscountPerPerson фиксированная скидка с цены каждого человека
	PricingFixedDiscountPerPerson GroupPricingType = "fixed_discount_per_person"

	// PricingPercentageDiscountTotal процентная скидка от итоговой суммы
	PricingPercentageDiscountTotal GroupPricingType = "percentage_discount_total"
)

// GroupPricingRule правило расчёта цены группового бронирования
// Неизвестный тип трактуется как per_person_multiply (задокументированный fallback, не ошибка)
type GroupPricingRule struct {
	Type   GroupPricingType
	Amount float64 // >= 0; для percentage_discount_total — проценты
}

// ServiceInfo данные услуги, необходимые движку (длительность и базовая цена за человека)
type ServiceInfo struct {
	ID              int64
	Name            string
	DurationMinutes int
	Price           float64
}

// StaffOverride переопределение цены/длительности услуги для конкретного сотрудника
type StaffOverride struct {
	Price           *float64
	DurationMinutes *int
}
