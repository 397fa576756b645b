package metrics

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type AgentConfig struct {
	Seat       int
	Color      string
	Kind       string
	Goroutines int
	Duration   time.Duration
	Episodes   int
	Cutoff     int
}

type GameRecord struct {
	Index int
	GameMetric
}

type MoveRecord struct {
	Game string // GameMetric.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates dir/name/<timestamp> to hold the CSV files of one run.
func NewWriter(dir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(dir, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"seat", "color", "kind", "goroutines", "duration", "episodes", "cutoff"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.Seat),
			config.Color,
			config.Kind,
			strconv.Itoa(config.Goroutines),
			config.Duration.String(),
			strconv.Itoa(config.Episodes),
			strconv.Itoa(config.Cutoff),
		})
	}
	if err := w.write("agent_configs.csv", header, rows); err != nil {
		return fmt.Errorf("failed to write agent configs: %w", err)
	}
	return nil
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"index", "id", "seed", "starting_player", "winner", "start_time", "end_time", "duration", "total_moves", "turns"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Index),
			record.ID,
			strconv.FormatUint(record.Seed, 10),
			record.StartingPlayer.String(),
			record.Winner.String(),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
			strconv.Itoa(record.Turns),
		})
	}
	if err := w.write("game_records.csv", header, rows); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	return nil
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "action", "duration", "episodes", "full_playouts", "tree_nodes"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Game,
			strconv.Itoa(record.Step),
			record.Player.String(),
			record.Action.String(),
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.FullPlayouts),
			strconv.Itoa(record.TreeNodes),
		})
	}
	if err := w.write("move_records.csv", header, rows); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	return nil
}

// WriteThroughput stores one row per search, with episodes per second.
func (w *Writer) WriteThroughput(searches []SearchMetric) error {
	header := []string{"goroutines", "duration", "episodes", "cutoff", "full_playouts", "tree_nodes", "episodes_per_second"}
	rows := make([][]string, 0, len(searches))
	for _, s := range searches {
		rate := 0.0
		if s.Duration > 0 {
			rate = float64(s.Episodes) / s.Duration.Seconds()
		}
		rows = append(rows, []string{
			strconv.Itoa(s.Goroutines),
			s.Duration.String(),
			strconv.Itoa(s.Episodes),
			strconv.Itoa(s.Cutoff),
			strconv.Itoa(s.FullPlayouts),
			strconv.Itoa(s.TreeNodes),
			strconv.FormatFloat(rate, 'f', 1, 64),
		})
	}
	if err := w.write("throughput.csv", header, rows); err != nil {
		return fmt.Errorf("failed to write throughput: %w", err)
	}
	return nil
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(w.baseDir, name))
	if err != nil {
		return err
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return errors.Join(err, f.Close())
	}
	if err := writer.WriteAll(rows); err != nil {
		return errors.Join(err, f.Close())
	}
	return f.Close()
}
