package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"testing"
	"time"

	"settlers/game"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counts concurrent episodes", func(t *testing.T) {
		c := NewCollector()
		c.Start(4, 50)

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 25; j++ {
					c.AddEpisode()
				}
				c.AddFullPlayout()
				c.AddTreeNodes(10)
			}()
		}
		wg.Wait()

		metric := c.Complete()
		require.Equal(t, 100, metric.Episodes)
		require.Equal(t, 4, metric.FullPlayouts)
		require.Equal(t, 40, metric.TreeNodes)
		require.Equal(t, 4, metric.Goroutines)
		require.Equal(t, 50, metric.Cutoff)
	})

	t.Run("start resets counts", func(t *testing.T) {
		c := NewCollector()
		c.Start(1, 1)
		c.AddEpisode()
		c.Start(1, 1)
		require.Zero(t, c.Complete().Episodes)
	})

	t.Run("dummy collects nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(2, 2)
		c.AddEpisode()
		require.Equal(t, SearchMetric{}, c.Complete())
	})
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "selfplay")
	require.NoError(t, err)

	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	err = w.WriteGameRecords([]GameRecord{{
		Index: 1,
		GameMetric: GameMetric{
			ID: "g1", Seed: 42, StartingPlayer: game.Red, Winner: game.NoColor,
			StartTime: start, EndTime: start.Add(time.Second), Duration: time.Second,
			TotalMoves: 300, Turns: 40,
		},
	}})
	require.NoError(t, err)

	rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
	require.Len(t, rows, 2)
	require.Equal(t, "index", rows[0][0])
	require.Equal(t, []string{"1", "g1", "42", "RED", "NONE", "2024-01-02T03:04:05Z", "2024-01-02T03:04:06Z", "1s", "300", "40"}, rows[1])

	err = w.WriteMoveRecords([]MoveRecord{{
		Game: "g1",
		MoveMetric: MoveMetric{
			Step: 3, Player: game.Blue, Action: game.RollAction,
			SearchMetric: SearchMetric{Duration: time.Millisecond, Episodes: 10, FullPlayouts: 2, TreeNodes: 7},
		},
	}})
	require.NoError(t, err)
	rows = readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
	require.Equal(t, []string{"g1", "3", "BLUE", "ROLL", "1ms", "10", "2", "7"}, rows[1])

	require.NoError(t, w.WriteAgentConfigs([]AgentConfig{{Seat: 0, Color: "RED", Kind: "mcts", Goroutines: 2, Episodes: 100, Cutoff: 50}}))
	rows = readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
	require.Equal(t, []string{"0", "RED", "mcts", "2", "0s", "100", "50"}, rows[1])

	require.NoError(t, w.WriteThroughput([]SearchMetric{{Goroutines: 4, Duration: 2 * time.Second, Episodes: 300, Cutoff: 50, FullPlayouts: 1, TreeNodes: 900}}))
	rows = readCSV(t, filepath.Join(w.Dir(), "throughput.csv"))
	require.Equal(t, []string{"4", "2s", "300", "50", "1", "900", "150.0"}, rows[1])
}

func TestWriterReportsWriteErrors(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("needs /dev/full")
	}
	w := &Writer{baseDir: "/dev"}
	err := w.write("full", []string{"a"}, [][]string{{"1"}})
	require.ErrorIs(t, err, syscall.ENOSPC)
}
