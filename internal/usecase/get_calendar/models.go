package get_calendar

import "time"

// Request модель запроса календаря доступности
type Request struct {
	ServiceID int64     // ID услуги
	From      time.Time // Начало диапазона (гражданская дата, включительно)
	To        time.Time // Конец диапазона (включительно)
}

// Response модель ответа с календарем доступности
type Response struct {
	ServiceID int64
	Days      []Day // По одному элементу на каждую дату диапазона, по порядку
}

// Day сводка доступности одной даты
type Day struct {
	Date      time.Time // Гражданская дата
	Available bool      // Есть ли хотя бы один свободный слот
	SlotCount int       // Количество свободных слотов
}
