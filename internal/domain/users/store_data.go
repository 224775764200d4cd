package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

func scanUser(row pgx.Row) (User, error) {
	var u User
	var positionID, managerID, mentorID, posName, posTrack *string
	var posID *string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &positionID, &managerID, &mentorID, &u.CreatedAt, &posID, &posName, &posTrack)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	if positionID != nil {
		u.PositionID = *positionID
	}
	if managerID != nil {
		u.ManagerID = *managerID
	}
	if mentorID != nil {
		u.MentorID = *mentorID
	}
	if posID != nil {
		u.Position = &Position{ID: *posID}
		if posName != nil {
			u.Position.Name = *posName
		}
		if posTrack != nil {
			u.Position.Track = *posTrack
		}
	}
	return u, nil
}

const userSelect = `
    SELECT u.id, u.name, u.email, u.role, u.position_id, u.manager_id, u.mentor_id, u.created_at,
           p.id, p.name, p.track
    FROM users u
    LEFT JOIN positions p ON p.id = u.position_id
`

func (s *Store) GetUser(ctx context.Context, userID string) (User, error) {
	return scanUser(s.DB.QueryRow(ctx, userSelect+" WHERE u.id = $1", userID))
}

func (s *Store) UserByEmail(ctx context.Context, email string) (User, string, error) {
	var u User
	var hash string
	var positionID, managerID, mentorID *string
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, email, password_hash, role, position_id, manager_id, mentor_id, created_at
    FROM users
    WHERE email = $1
  `, email).Scan(&u.ID, &u.Name, &u.Email, &hash, &u.Role, &positionID, &managerID, &mentorID, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, "", ErrUserNotFound
	}
	if err != nil {
		return User{}, "", err
	}
	if positionID != nil {
		u.PositionID = *positionID
	}
	if managerID != nil {
		u.ManagerID = *managerID
	}
	if mentorID != nil {
		u.MentorID = *mentorID
	}
	return u, hash, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := s.DB.Query(ctx, userSelect+" ORDER BY u.created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// DirectReports lists users managed by managerID.
func (s *Store) DirectReports(ctx context.Context, managerID string) ([]User, error) {
	rows, err := s.DB.Query(ctx, userSelect+" WHERE u.manager_id = $1 ORDER BY u.created_at", managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// PositionTrack resolves the career track of the user's position. An empty
// track is valid for users without a position.
func (s *Store) PositionTrack(ctx context.Context, userID string) (string, error) {
	var track *string
	err := s.DB.QueryRow(ctx, `
    SELECT p.track
    FROM users u
    LEFT JOIN positions p ON p.id = u.position_id
    WHERE u.id = $1
  `, userID).Scan(&track)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", err
	}
	if track == nil {
		return "", nil
	}
	return *track, nil
}
