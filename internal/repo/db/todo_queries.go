package db

const todoCreateQ = `
INSERT INTO todos (user_id, title, description, status, priority, due_date, tags)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id
`

const todoListQ = `
SELECT id, user_id, title, description, status, priority, due_date, completed, completed_at, tags, created_at, updated_at
FROM todos
WHERE user_id = $1
ORDER BY created_at DESC
`

const todoListAllQ = `
SELECT id, user_id, title, description, status, priority, due_date, completed, completed_at, tags, created_at, updated_at
FROM todos
ORDER BY created_at DESC
`

const todoGetQ = `
SELECT id, user_id, title, description, status, priority, due_date, completed, completed_at, tags, created_at, updated_at
FROM todos
WHERE id = $1 AND user_id = $2
`

const todoUpdateQ = `
UPDATE todos
SET title = $1,
    description = $2,
    status = $3,
    priority = $4,
    due_date = $5,
    completed = $6,
    completed_at = $7,
    tags = $8,
    updated_at = NOW()
WHERE id = $9 AND user_id = $10
`

const todoDeleteQ = `
DELETE FROM todos
WHERE id = $1 AND user_id = $2
`
