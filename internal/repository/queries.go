package repository

func upsertUserQuery(u User) (string, []any) {
	return `INSERT INTO users (id, provider, email, nickname) VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET
	provider = EXCLUDED.provider,
	email = EXCLUDED.email,
	nickname = EXCLUDED.nickname,
	updated_at = now()`, []any{u.ID, u.Provider, u.Email, u.Nickname}
}
