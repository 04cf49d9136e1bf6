package mysql

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func userColumns() []string {
	return []string{"id", "nickname", "kakao_id", "kakao_email", "created_at", "updated_at"}
}

// TestGetOrCreateByKakaoExisting 已有用户按 kakao_id 命中，不触发写入
func TestGetOrCreateByKakaoExisting(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := NewUserRepository(db)

	now := time.Now()
	mock.ExpectQuery("SELECT id, nickname, kakao_id, kakao_email").
		WithArgs(int64(12345)).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(1, "tester", int64(12345), "tester@example.com", now, now))

	user, created, err := repo.GetOrCreateByKakao(12345, "tester@example.com")
	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "tester@example.com", user.KakaoEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestGetOrCreateByKakaoEmailChanged Kakao 侧邮箱变更后仍命中同一账号并同步邮箱
func TestGetOrCreateByKakaoEmailChanged(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := NewUserRepository(db)

	now := time.Now()
	mock.ExpectQuery("SELECT id, nickname, kakao_id, kakao_email").
		WithArgs(int64(12345)).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(1, "tester", int64(12345), "old@example.com", now, now))
	mock.ExpectExec("UPDATE users SET kakao_email").
		WithArgs("new@example.com", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user, created, err := repo.GetOrCreateByKakao(12345, "new@example.com")
	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "new@example.com", user.KakaoEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestGetOrCreateByKakaoCreates 首次登录创建用户
func TestGetOrCreateByKakaoCreates(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT id, nickname, kakao_id, kakao_email").
		WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows(userColumns()))
	mock.ExpectExec("INSERT INTO users").
		WithArgs(int64(999), "new@example.com").
		WillReturnResult(sqlmock.NewResult(7, 1))

	user, created, err := repo.GetOrCreateByKakao(999, "new@example.com")
	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 7, user.ID)
	assert.Nil(t, user.Nickname)
	assert.NoError(t, mock.ExpectationsWereMet())
}
