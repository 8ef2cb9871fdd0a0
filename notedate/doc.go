// Package notedate renders "today" in the fixed UTC+9 zone as the title and date of a daily note.
package notedate
