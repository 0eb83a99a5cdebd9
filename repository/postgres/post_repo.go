package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/inkwell/backend/domain"
	"github.com/inkwell/backend/repository"
)

type postRepository struct {
	db Querier
}

// NewPostRepository returns a Postgres-backed implementation of PostRepository.
func NewPostRepository(db Querier) repository.PostRepository {
	return &postRepository{db: db}
}

const postWithAuthorColumns = `
	p.id, p.title, p.content, p.image, p.author_id, p.created_at, p.updated_at,
	u.id, u.name, u.email, u.created_at, u.updated_at`

func (r *postRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	const query = `
	SELECT` + postWithAuthorColumns + `
	FROM posts p
	JOIN users u ON u.id = p.author_id
	WHERE p.id = $1
	`
	post, err := scanPost(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	if err := r.attachComments(ctx, []*domain.Post{post}); err != nil {
		return nil, err
	}
	return post, nil
}

func (r *postRepository) List(ctx context.Context, filter repository.PostFilter) ([]domain.Post, int64, error) {
	filter = filter.Normalize()

	const countQuery = `
	SELECT COUNT(*)
	FROM posts
	WHERE ($1 = 0 OR author_id = $1)
	`
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, filter.AuthorID).Scan(&total); err != nil {
		return nil, 0, err
	}

	const query = `
	SELECT` + postWithAuthorColumns + `
	FROM posts p
	JOIN users u ON u.id = p.author_id
	WHERE ($1 = 0 OR p.author_id = $1)
	ORDER BY p.id DESC
	LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, filter.AuthorID, filter.Limit, filter.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	refs := make([]*domain.Post, len(posts))
	for i := range posts {
		refs[i] = &posts[i]
	}
	if err := r.attachComments(ctx, refs); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	if post == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO posts (title, content, image, author_id)
	VALUES ($1, $2, $3, $4)
	RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, post.Title, post.Content, nullString(post.Image), post.AuthorID).
		Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return nil
}

func (r *postRepository) Update(ctx context.Context, post *domain.Post) error {
	if post == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE posts
	SET title = $2,
		content = $3,
		image = $4,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, post.ID, post.Title, post.Content, nullString(post.Image)).
		Scan(&post.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrPostNotFound
		}
		return err
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM posts WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *postRepository) ListImages(ctx context.Context) ([]string, error) {
	const query = `SELECT image FROM posts WHERE image IS NOT NULL AND image <> ''`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []string
	for rows.Next() {
		var image string
		if err := rows.Scan(&image); err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, rows.Err()
}

// attachComments loads comments (with their authors) for every post in one
// query and distributes them onto the posts.
func (r *postRepository) attachComments(ctx context.Context, posts []*domain.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]int64, len(posts))
	byID := make(map[int64]*domain.Post, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
		byID[p.ID] = p
	}

	const query = `
	SELECT c.id, c.content, c.user_id, c.post_id, c.created_at, c.updated_at,
		u.id, u.name, u.email, u.created_at, u.updated_at
	FROM comments c
	JOIN users u ON u.id = c.user_id
	WHERE c.post_id = ANY($1)
	ORDER BY c.id
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var comment domain.Comment
		var user domain.User
		if err := rows.Scan(
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
		); err != nil {
			return err
		}
		comment.User = &user
		if post, ok := byID[comment.PostID]; ok {
			post.Comments = append(post.Comments, comment)
		}
	}
	return rows.Err()
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var post domain.Post
	var image *string
	var author domain.User

	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&image,
		&post.AuthorID,
		&post.CreatedAt,
		&post.UpdatedAt,
		&author.ID,
		&author.Name,
		&author.Email,
		&author.CreatedAt,
		&author.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}

	if image != nil {
		post.Image = *image
	}
	post.Author = &author
	return &post, nil
}
