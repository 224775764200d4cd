package reports

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"rpe/internal/domain/scores"
	"rpe/internal/domain/users"
)

// ScoreSource is the slice of the aggregation service reports read.
type ScoreSource interface {
	TimelineByUser(ctx context.Context, userID string) ([]scores.CycleScore, error)
}

type UserSource interface {
	Get(ctx context.Context, userID string) (users.User, error)
}

type Service struct {
	scores ScoreSource
	users  UserSource
}

func NewService(scoreSource ScoreSource, userSource UserSource) *Service {
	return &Service{scores: scoreSource, users: userSource}
}

// ScoreTimelinePDF renders the user's full score timeline, one row per
// cycle, as a PDF document.
func (s *Service) ScoreTimelinePDF(ctx context.Context, userID string) ([]byte, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	timeline, err := s.scores.TimelineByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Score Timeline")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Name: %s", user.Name))
	pdf.Ln(7)
	if user.Position != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Position: %s", user.Position.Name))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(45, 8, "Cycle", "1", 0, "", false, 0, "")
	pdf.CellFormat(45, 8, "Period", "1", 0, "", false, 0, "")
	pdf.CellFormat(25, 8, "Self", "1", 0, "", false, 0, "")
	pdf.CellFormat(25, 8, "Leader", "1", 0, "", false, 0, "")
	pdf.CellFormat(25, 8, "Final", "1", 0, "", false, 0, "")
	pdf.CellFormat(25, 8, "Peers", "1", 1, "", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, entry := range timeline {
		period := fmt.Sprintf("%s - %s", entry.StartDate.Format("2006-01-02"), entry.EndDate.Format("2006-01-02"))
		pdf.CellFormat(45, 8, entry.Name, "1", 0, "", false, 0, "")
		pdf.CellFormat(45, 8, period, "1", 0, "", false, 0, "")
		pdf.CellFormat(25, 8, formatScore(entry.SelfScore), "1", 0, "", false, 0, "")
		pdf.CellFormat(25, 8, formatScore(entry.LeaderScore), "1", 0, "", false, 0, "")
		pdf.CellFormat(25, 8, formatScore(entry.FinalScore), "1", 0, "", false, 0, "")
		pdf.CellFormat(25, 8, formatPeers(entry.PeerScores), "1", 1, "", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatScore(value *float64) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *value)
}

func formatPeers(values []float64) string {
	if len(values) == 0 {
		return "-"
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return fmt.Sprintf("%.2f (%d)", total/float64(len(values)), len(values))
}
