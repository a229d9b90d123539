package recurrence

// DayNames is the day-of-week mask table, Monday-first. Bit 0 (value 1) is
// Monday, bit 6 (value 64) is Sunday.
var DayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// MonthNames is the month mask table, January-first. Bit 0 (value 1) is
// January, bit 11 (value 2048) is December.
var MonthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// AllMonths is the month mask covering every month.
const AllMonths = 4095

// MaxDayOfWeekMask is the widest valid day-of-week mask (all seven days).
const MaxDayOfWeekMask = 127

// NamesFromMask returns the names from the ordered table whose bits are set
// in mask, in table order. Bits beyond the table width are ignored.
func NamesFromMask(mask int, table []string) []string {
	var names []string
	for i, name := range table {
		if mask&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return names
}

// MaskFromNames returns the mask with one bit set per named entry. Names not
// present in the table contribute nothing.
func MaskFromNames(names []string, table []string) int {
	mask := 0
	for _, name := range names {
		for i, candidate := range table {
			if name == candidate {
				mask |= 1 << i
				break
			}
		}
	}
	return mask
}
