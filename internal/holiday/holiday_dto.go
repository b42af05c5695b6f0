package holiday

type CreateHolidayRequest struct {
	Date  string `json:"date" binding:"required"`
	Title string `json:"title" binding:"required"`
}

type HolidayResponse struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Title  string `json:"title"`
	Source string `json:"source"`
}

type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
