package entity

// 1-based column positions of the lead sheet.
const (
	ColumnName = iota + 1
	ColumnPhone
	ColumnUsername
	ColumnUserID
	ColumnDate
	ColumnStatus
	ColumnComment
	ColumnManager
)

const ColumnCount = ColumnManager

// Header is written once at the top of the local fallback file.
var Header = []string{"Имя", "Телефон", "Username", "UserID", "Дата", "Статус", "Комментарий", "Менеджер"}

// Record is one lead row, cells in column order.
type Record [ColumnCount]string

// RecordFromRow pads short rows (Sheets drops trailing empty cells) and
// ignores anything past the last known column.
func RecordFromRow(row []string) Record {
	var r Record
	copy(r[:], row)
	return r
}

// Field returns the cell at a 1-based column, or "" when out of range.
func (r Record) Field(column int) string {
	if column < 1 || column > ColumnCount {
		return ""
	}
	return r[column-1]
}

func (r Record) Values() []string {
	out := make([]string, ColumnCount)
	copy(out, r[:])
	return out
}

func (r Record) Name() string     { return r.Field(ColumnName) }
func (r Record) Phone() string    { return r.Field(ColumnPhone) }
func (r Record) Username() string { return r.Field(ColumnUsername) }
func (r Record) UserID() string   { return r.Field(ColumnUserID) }
func (r Record) Date() string     { return r.Field(ColumnDate) }
func (r Record) Status() string   { return r.Field(ColumnStatus) }
func (r Record) Comment() string  { return r.Field(ColumnComment) }
func (r Record) Manager() string  { return r.Field(ColumnManager) }
