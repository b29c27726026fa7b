package projects

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrProjectNotFound = errors.New("project not found")
)

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(
	ctx context.Context,
	userID string,
	req CreateProjectRequest,
) (*Project, error) {
	var project Project

	// initialize empty arrays if nil to avoid null in JSON responses
	tags := req.Tags

	if tags == nil {
		tags = []string{}
	}

	err := r.db.QueryRow(
		ctx,
		queryCreate,
		userID,
		req.Title,
		req.Code,
		req.Language,
		req.ComponentName,
		req.IsPublic,
		req.Description,
		tags,
		req.ConversationHistory,
	).Scan(
		&project.ID,
		&project.UserID,
		&project.Title,
		&project.Code,
		&project.Language,
		&project.ComponentName,
		&project.IsPublic,
		&project.Description,
		&project.Tags,
		&project.ConversationHistory,
		&project.CreatedAt,
		&project.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &project, nil
}

func (r *Repository) List(ctx context.Context, userID string, limit, offset int) ([]Project, int, error) {
	// get total count first
	var total int
	if err := r.db.QueryRow(ctx, queryCountByUser, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, queryList, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()
	var projects []Project

	for rows.Next() {
		var p Project
		err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Title,
			&p.Code,
			&p.Language,
			&p.ComponentName,
			&p.IsPublic,
			&p.Description,
			&p.Tags,
			&p.ConversationHistory,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

func (r *Repository) ListPublic(ctx context.Context, limit, offset int) ([]Project, int, error) {
	// get total count first
	var total int
	if err := r.db.QueryRow(ctx, queryCountPublic).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, queryListPublic, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()
	var projects []Project

	for rows.Next() {
		var p Project
		err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Title,
			&p.Code,
			&p.Language,
			&p.ComponentName,
			&p.IsPublic,
			&p.Description,
			&p.Tags,
			&p.ConversationHistory,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}

		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

func (r *Repository) Get(ctx context.Context, projectID, userID string) (*Project, error) {
	var project Project

	err := r.db.QueryRow(ctx, queryGet, projectID, userID).Scan(
		&project.ID,
		&project.UserID,
		&project.Title,
		&project.Code,
		&project.Language,
		&project.ComponentName,
		&project.IsPublic,
		&project.Description,
		&project.Tags,
		&project.ConversationHistory,
		&project.CreatedAt,
		&project.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &project, nil
}

func (r *Repository) GetPublic(ctx context.Context, projectID string) (*Project, error) {
	var project Project

	err := r.db.QueryRow(ctx, queryGetPublic, projectID).Scan(
		&project.ID,
		&project.UserID,
		&project.Title,
		&project.Code,
		&project.Language,
		&project.ComponentName,
		&project.IsPublic,
		&project.Description,
		&project.Tags,
		&project.ConversationHistory,
		&project.CreatedAt,
		&project.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &project, nil
}

func (r *Repository) Update(
	ctx context.Context,
	projectID, userID string,
	req UpdateProjectRequest,
) (*Project, error) {
	var project Project

	err := r.db.QueryRow(
		ctx,
		queryUpdate,
		req.Title,
		req.Code,
		req.ComponentName,
		req.IsPublic,
		req.Description,
		req.Tags,
		req.ConversationHistory,
		projectID,
		userID,
	).Scan(
		&project.ID,
		&project.UserID,
		&project.Title,
		&project.Code,
		&project.Language,
		&project.ComponentName,
		&project.IsPublic,
		&project.Description,
		&project.Tags,
		&project.ConversationHistory,
		&project.CreatedAt,
		&project.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &project, nil
}

func (r *Repository) Delete(ctx context.Context, projectID, userID string) error {
	result, err := r.db.Exec(ctx, queryDelete, projectID, userID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrProjectNotFound
	}

	return nil
}
