package storage

import (
	"fmt"
	"time"
)

// Flight outcomes stored in the flights table.
const (
	OutcomeLanded    = "landed"
	OutcomeCrashed   = "crashed"
	OutcomeAbandoned = "abandoned"
)

// FlightRecord is the persisted summary of one level attempt.
type FlightRecord struct {
	ID         int64
	Seed       int64
	Difficulty string
	Outcome    string
	Score      int
	FuelLeft   int
	Multiplier float64
	Distance   float64
	Ticks      int64
	CreatedAt  time.Time
}

// FlightStats aggregates every recorded flight.
type FlightStats struct {
	Attempts  int
	Landings  int
	Crashes   int
	BestScore int
	Longest   float64 // Largest distance from spawn
}

// SaveFlight records a finished or abandoned flight.
// Returns the ID of the inserted record.
func (s *Store) SaveFlight(f FlightRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO flights
		 (seed, difficulty, outcome, score, fuel_left, multiplier, distance, ticks)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		f.Seed, f.Difficulty, f.Outcome, f.Score, f.FuelLeft, f.Multiplier, f.Distance, f.Ticks,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save flight: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentFlights retrieves the most recent flights, newest first.
func (s *Store) RecentFlights(limit int) ([]FlightRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, seed, difficulty, outcome, score, fuel_left, multiplier, distance, ticks, created_at
		 FROM flights
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query flights: %w", err)
	}
	defer rows.Close()

	var flights []FlightRecord
	for rows.Next() {
		var f FlightRecord
		var createdAt any
		if err := rows.Scan(
			&f.ID,
			&f.Seed,
			&f.Difficulty,
			&f.Outcome,
			&f.Score,
			&f.FuelLeft,
			&f.Multiplier,
			&f.Distance,
			&f.Ticks,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		f.CreatedAt = parseTime(createdAt)
		flights = append(flights, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return flights, nil
}

// FlightStats retrieves aggregated statistics over all flights.
func (s *Store) FlightStats() (FlightStats, error) {
	var st FlightStats
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(score), 0),
		        COALESCE(MAX(distance), 0)
		 FROM flights`,
		OutcomeLanded, OutcomeCrashed,
	).Scan(&st.Attempts, &st.Landings, &st.Crashes, &st.BestScore, &st.Longest)
	if err != nil {
		return FlightStats{}, fmt.Errorf("storage: cannot get flight stats: %w", err)
	}
	return st, nil
}
