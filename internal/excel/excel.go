package excel

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/derekprior/fixtures/internal/season"
)

const (
	MasterSheet = "Fixtures"
	dateFormat  = "2006-01-02"
	timeFormat  = "15:04"

	maxSheetName = 31
)

// Generate creates a workbook with the master fixture list and one sheet per
// team, named after the team id. If peakTime ("HH:MM") is set, master-sheet
// rows at that time are shaded.
func Generate(s *season.Season, peakTime string) (*excelize.File, error) {
	f := excelize.NewFile()

	// Set default font for the workbook
	f.SetDefaultFont("Arial")

	if err := writeMasterSheet(f, s, peakTime); err != nil {
		return nil, fmt.Errorf("writing master sheet: %w", err)
	}

	if err := writeTeamSheets(f, s); err != nil {
		return nil, fmt.Errorf("writing team sheets: %w", err)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

type masterRow struct {
	league string
	match  season.Match
}

func writeMasterSheet(f *excelize.File, s *season.Season, peakTime string) error {
	sheet := MasterSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Date", "Day", "Time", "League", "Court", "Home", "Away"}
	if err := writeHeaders(f, sheet, headers); err != nil {
		return err
	}

	var rows []masterRow
	for _, l := range s.Leagues() {
		for _, m := range l.Matches {
			rows = append(rows, masterRow{league: l.Name, match: m})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].match, rows[j].match
		if !a.DateTime.Equal(b.DateTime) {
			return a.DateTime.Before(b.DateTime)
		}
		return a.Court < b.Court
	})

	cellStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 16, Family: "Arial"},
	})

	for i, r := range rows {
		row := i + 2
		m := r.match
		values := []string{
			m.DateTime.Format(dateFormat),
			m.DateTime.Format("Mon"),
			m.DateTime.Format(timeFormat),
			r.league,
			m.Court,
			teamName(s, m.HomeTeamID),
			teamName(s, m.AwayTeamID),
		}
		for col, v := range values {
			f.SetCellValue(sheet, cellRef(col+1, row), v)
		}
		if cellStyle != 0 {
			f.SetCellStyle(sheet, cellRef(1, row), cellRef(len(headers), row), cellStyle)
		}
	}

	widths := map[string]float64{"A": 18, "B": 8, "C": 10, "D": 22, "E": 18, "F": 24, "G": 24}
	for col, w := range widths {
		f.SetColWidth(sheet, col, col, w)
	}

	// Conditional formatting: peak-time rows get light red
	if peakTime != "" && len(rows) > 0 {
		lastRow := len(rows) + 1
		redFill, _ := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#FFC7CE"}},
			Font: &excelize.Font{Size: 16, Family: "Arial"},
		})
		cellRange := fmt.Sprintf("A2:%s%d", colLetter(len(headers)), lastRow)
		formula := fmt.Sprintf(`$C2="%s"`, peakTime)
		if err := f.SetConditionalFormat(sheet, cellRange, []excelize.ConditionalFormatOptions{
			{
				Type:     "formula",
				Criteria: formula,
				Format:   &redFill,
			},
		}); err != nil {
			return err
		}
	}

	return nil
}

func writeTeamSheets(f *excelize.File, s *season.Season) error {
	cellStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 16, Family: "Arial"},
	})
	headers := []string{"Date", "Day", "Time", "Court", "Opponent", "Home/Away"}
	// Sheet1 is deleted once every sheet is written.
	names := newSheetNames(MasterSheet, "Sheet1")

	for _, l := range s.Leagues() {
		for _, team := range l.Teams {
			sheet := names.add(team.ID)
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("team %q: %w", team.ID, err)
			}
			if err := writeHeaders(f, sheet, headers); err != nil {
				return err
			}

			var games []season.Match
			for _, m := range l.Matches {
				if m.Involves(team.ID) {
					games = append(games, m)
				}
			}
			sort.SliceStable(games, func(i, j int) bool {
				return games[i].DateTime.Before(games[j].DateTime)
			})

			for i, m := range games {
				row := i + 2
				homeAway := "Away"
				if m.IsHome(team.ID) {
					homeAway = "Home"
				}
				values := []string{
					m.DateTime.Format(dateFormat),
					m.DateTime.Format("Mon"),
					m.DateTime.Format(timeFormat),
					m.Court,
					teamName(s, m.Opponent(team.ID)),
					homeAway,
				}
				for col, v := range values {
					f.SetCellValue(sheet, cellRef(col+1, row), v)
				}
				if cellStyle != 0 {
					f.SetCellStyle(sheet, cellRef(1, row), cellRef(len(headers), row), cellStyle)
				}
			}

			// Set column widths (sized for Arial 16)
			widths := map[string]float64{"A": 18, "B": 8, "C": 10, "D": 18, "E": 24, "F": 14}
			for col, w := range widths {
				f.SetColWidth(sheet, col, col, w)
			}
		}
	}

	return nil
}

// sheetNames hands out sheet names that Excel accepts and that are distinct
// ignoring case, as Excel compares them.
type sheetNames struct {
	taken map[string]bool
}

func newSheetNames(reserved ...string) *sheetNames {
	n := &sheetNames{taken: make(map[string]bool)}
	for _, r := range reserved {
		n.taken[strings.ToLower(r)] = true
	}
	return n
}

// add cleans base and, if it is taken, appends the smallest free suffix
// starting at 0, truncating so the result stays within 31 characters.
func (n *sheetNames) add(base string) string {
	base = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '_'
		}
		return r
	}, base)
	base = strings.Trim(base, "'")
	if base == "" {
		base = "Team"
	}

	name := truncate(base, maxSheetName)
	for i := 0; n.taken[strings.ToLower(name)]; i++ {
		suffix := strconv.Itoa(i)
		name = truncate(base, maxSheetName-len(suffix)) + suffix
	}
	n.taken[strings.ToLower(name)] = true
	return name
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func writeHeaders(f *excelize.File, sheet string, headers []string) error {
	for i, h := range headers {
		if err := f.SetCellValue(sheet, cellRef(i+1, 1), h); err != nil {
			return err
		}
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 16, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if headerStyle != 0 {
		f.SetCellStyle(sheet, cellRef(1, 1), cellRef(len(headers), 1), headerStyle)
	}
	return nil
}

func teamName(s *season.Season, id string) string {
	if name, ok := s.TeamName(id); ok {
		return name
	}
	return id
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
