package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/inkwell/backend/domain"
	"github.com/inkwell/backend/repository"
)

type commentRepository struct {
	db Querier
}

// NewCommentRepository returns a Postgres-backed implementation of CommentRepository.
func NewCommentRepository(db Querier) repository.CommentRepository {
	return &commentRepository{db: db}
}

const commentWithRelationsColumns = `
	c.id, c.content, c.user_id, c.post_id, c.created_at, c.updated_at,
	u.id, u.name, u.email, u.created_at, u.updated_at,
	p.id, p.title, p.content, p.image, p.author_id, p.created_at, p.updated_at`

const commentWithRelationsFrom = `
	FROM comments c
	JOIN users u ON u.id = c.user_id
	JOIN posts p ON p.id = c.post_id`

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	const query = `
	SELECT` + commentWithRelationsColumns + commentWithRelationsFrom + `
	WHERE c.id = $1
	`
	return scanComment(r.db.QueryRow(ctx, query, id))
}

func (r *commentRepository) ListAll(ctx context.Context) ([]domain.Comment, error) {
	const query = `
	SELECT` + commentWithRelationsColumns + commentWithRelationsFrom + `
	ORDER BY c.id
	`
	return r.queryComments(ctx, query)
}

func (r *commentRepository) ListByPost(ctx context.Context, postID int64) ([]domain.Comment, error) {
	const query = `
	SELECT` + commentWithRelationsColumns + commentWithRelationsFrom + `
	WHERE c.post_id = $1
	ORDER BY c.id
	`
	return r.queryComments(ctx, query, postID)
}

func (r *commentRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Comment, error) {
	const query = `
	SELECT` + commentWithRelationsColumns + commentWithRelationsFrom + `
	WHERE c.user_id = $1
	ORDER BY c.id
	`
	return r.queryComments(ctx, query, userID)
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if comment == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO comments (content, user_id, post_id)
	VALUES ($1, $2, $3)
	RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, comment.Content, comment.UserID, comment.PostID).
		Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrPostNotFound
		}
		return err
	}
	return nil
}

func (r *commentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	if comment == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE comments
	SET content = $2,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, comment.ID, comment.Content).Scan(&comment.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrCommentNotFound
		}
		return err
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM comments WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *commentRepository) queryComments(ctx context.Context, query string, args ...any) ([]domain.Comment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *comment)
	}
	return comments, rows.Err()
}

func scanComment(row pgx.Row) (*domain.Comment, error) {
	var comment domain.Comment
	var user domain.User
	var post domain.Post
	var image *string

	err := row.Scan(
		&comment.ID,
		&comment.Content,
		&comment.UserID,
		&comment.PostID,
		&comment.CreatedAt,
		&comment.UpdatedAt,
		&user.ID,
		&user.Name,
		&user.Email,
		&user.CreatedAt,
		&user.UpdatedAt,
		&post.ID,
		&post.Title,
		&post.Content,
		&image,
		&post.AuthorID,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, err
	}

	if image != nil {
		post.Image = *image
	}
	comment.User = &user
	comment.Post = &post
	return &comment, nil
}
