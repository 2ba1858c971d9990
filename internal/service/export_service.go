package service

import (
	"fmt"
	"io"

	"github.com/dom/alliance-dashboard/internal/domain"
	"github.com/xuri/excelize/v2"
)

const rankingSheet = "Classement"

// badgeFill is the cell background of each status badge color.
var badgeFill = map[string]string{
	"green":  "C6EFCE",
	"orange": "FFD8A8",
	"red":    "FFC7CE",
	"grey":   "E7E6E6",
}

type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// RankingXLSX writes a ranking as a single-sheet workbook: rank, alliance,
// player, total power, then one column per team slot coloured by status.
func (s *ExportService) RankingXLSX(r *Ranking, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rankingSheet); err != nil {
		return err
	}

	slots := 0
	for _, row := range r.Rows {
		if len(row.Slots) > slots {
			slots = len(row.Slots)
		}
	}
	if slots == 0 {
		slots = len(r.Characters)
	}

	header := []interface{}{"Rang", "Alliance", "Joueur", "Puissance"}
	for i := 0; i < slots; i++ {
		name := ""
		if i < len(r.Characters) {
			name = r.Characters[i]
		}
		header = append(header, name)
	}
	if err := f.SetSheetRow(rankingSheet, "A1", &header); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(rankingSheet, "A1", lastHeader, headerStyle); err != nil {
		return err
	}

	fills := make(map[string]int, len(badgeFill))
	for badge, rgb := range badgeFill {
		id, err := f.NewStyle(&excelize.Style{
			Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{rgb}},
			NumFmt: 3,
		})
		if err != nil {
			return err
		}
		fills[badge] = id
	}
	powerStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		return err
	}

	for i, row := range r.Rows {
		line := i + 2
		values := []interface{}{row.Rank, fmt.Sprintf("%s %s", row.AllianceEmoji, row.Alliance), row.Player, row.TotalPower}
		for _, slot := range row.Slots {
			if slot.Status == domain.SlotEmpty {
				values = append(values, nil)
				continue
			}
			values = append(values, slot.Power)
		}

		start, _ := excelize.CoordinatesToCellName(1, line)
		if err := f.SetSheetRow(rankingSheet, start, &values); err != nil {
			return err
		}

		total, _ := excelize.CoordinatesToCellName(4, line)
		if err := f.SetCellStyle(rankingSheet, total, total, powerStyle); err != nil {
			return err
		}
		for j, slot := range row.Slots {
			cell, _ := excelize.CoordinatesToCellName(5+j, line)
			if err := f.SetCellStyle(rankingSheet, cell, cell, fills[slot.Status.Color()]); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(rankingSheet, "B", "C", 18); err != nil {
		return err
	}
	if err := f.SetPanes(rankingSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	return f.Write(w)
}
