package projects

const (
	queryCreate = `
		INSERT INTO projects (
			user_id, title, code, language, component_name, is_public, description, tags, conversation_history
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, user_id, title, code, language, component_name, is_public, description, tags, conversation_history, created_at, updated_at
	`

	queryCountByUser = `
		SELECT COUNT(*)
		FROM projects
		WHERE user_id = $1
	`

	queryList = `
		SELECT id, user_id, title, code, language, component_name, is_public, description, tags, conversation_history, created_at, updated_at
		FROM projects
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	queryCountPublic = `
		SELECT COUNT(*)
		FROM projects
		WHERE is_public = true
	`

	queryListPublic = `
		SELECT id, user_id, title, code, language, component_name, is_public, description, tags, conversation_history, created_at, updated_at
		FROM projects
		WHERE is_public = true
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	queryGet = `
		SELECT id, user_id, title, code, language, component_name, is_public, description, tags, conversation_history, created_at, updated_at
		FROM projects
		WHERE id = $1 AND user_id = $2
	`

	queryGetPublic = `
		SELECT id, user_id, title, code, language, component_name, is_public, description, tags, conversation_history, created_at, updated_at
		FROM projects
		WHERE id = $1 AND is_public = true
	`

	queryUpdate = `
		UPDATE projects
		SET title = COALESCE($1, title),
		    code = COALESCE($2, code),
		    component_name = COALESCE($3, component_name),
		    is_public = COALESCE($4, is_public),
		    description = COALESCE($5, description),
		    tags = COALESCE($6, tags),
		    conversation_history = COALESCE($7, conversation_history),
		    updated_at = NOW()
		WHERE id = $8 AND user_id = $9
		RETURNING id, user_id, title, code, language, component_name, is_public, description, tags, conversation_history, created_at, updated_at
	`

	queryDelete = `
		DELETE FROM projects
		WHERE id = $1 AND user_id = $2
	`
)
