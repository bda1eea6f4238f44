package db

const userGetByIDQ = `
SELECT
	u.id,
	u.name,
	u.email,
	u.avatar,
	u.role,
	u.bio,
	u.location,
	u.website,
	u.social_links,
	u.preferences,
	u.is_verified,
	u.last_login,
	u.created_at,
	u.updated_at
FROM users u
WHERE u.id = $1
`

const userGetByEmailQ = `
SELECT
    u.id,
    u.name,
    u.email,
    u.password,
    u.avatar,
	u.role,
	u.bio,
	u.location,
	u.website,
	u.social_links,
	u.preferences,
	u.is_verified,
	u.last_login,
    u.created_at,
    u.updated_at
FROM users u
WHERE u.email = $1
`

const userCreateQ = `
INSERT INTO users (name, password, email, avatar, role, preferences)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`

const userUpdateQ = `
UPDATE users
SET name = $1,
    avatar = $2,
	bio = $3,
	location = $4,
	website = $5,
	social_links = $6,
	preferences = $7,
	updated_at = NOW()
WHERE id = $8
`

const userDeleteQ = `
DELETE FROM users
WHERE id = $1
`

const userTouchLoginQ = `
UPDATE users
SET last_login = NOW()
WHERE id = $1
`

const loginHistoryAppendQ = `
INSERT INTO login_history (user_id, ip, device)
VALUES ($1, $2, $3)
`

const loginHistoryListQ = `
SELECT id, user_id, ts, ip, device
FROM login_history
WHERE user_id = $1
ORDER BY ts DESC
`
