package domain

// DateFormat формат даты бронирования (YYYY-MM-DD)
const DateFormat = "2006-01-02"
