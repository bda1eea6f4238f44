package db

const tokenCreateQ = `
INSERT INTO refresh_tokens (token, user_id, expires_at)
VALUES ($1, $2, $3)
`

const tokenExistsQ = `
SELECT EXISTS (
	SELECT 1
	FROM refresh_tokens
	WHERE token = $1
)
`

const tokenRevokeQ = `
DELETE FROM refresh_tokens
WHERE token = $1
`

const tokenRevokeAllQ = `
DELETE FROM refresh_tokens
WHERE user_id = $1
`
