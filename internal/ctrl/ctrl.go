package ctrl

import (
	"context"
	"io"
	"time"

	"github.com/JMURv/taskboard/internal/auth/jwt"
	"github.com/JMURv/taskboard/internal/dto"
	md "github.com/JMURv/taskboard/internal/models"
	"github.com/JMURv/taskboard/internal/repo/s3"
	"github.com/google/uuid"
)

type AppRepo interface {
	authRepo
	userRepo
	todoRepo
}

type AppCtrl interface {
	authCtrl
	userCtrl
	todoCtrl
}

type authRepo interface {
	CreateToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
	IsTokenRevoked(ctx context.Context, token string) (bool, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllTokens(ctx context.Context, userID uuid.UUID) error
}

type userRepo interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (*md.User, error)
	GetUserByEmail(ctx context.Context, email string) (*md.User, error)
	CreateUser(ctx context.Context, u *md.User) (uuid.UUID, error)
	UpdateUser(ctx context.Context, u *md.User) error
	DeleteUser(ctx context.Context, userID uuid.UUID) error
	AppendLoginEntry(ctx context.Context, userID uuid.UUID, ip, device string) error
	ListLoginHistory(ctx context.Context, userID uuid.UUID) ([]md.LoginEntry, error)
}

type todoRepo interface {
	CreateTodo(ctx context.Context, t *md.Todo) (uuid.UUID, error)
	ListTodos(ctx context.Context, userID uuid.UUID) ([]md.Todo, error)
	ListAllTodos(ctx context.Context) ([]md.Todo, error)
	GetTodo(ctx context.Context, id, userID uuid.UUID) (*md.Todo, error)
	UpdateTodo(ctx context.Context, t *md.Todo) error
	DeleteTodo(ctx context.Context, id, userID uuid.UUID) error
}

type authCtrl interface {
	Register(ctx context.Context, req *dto.RegisterRequest, meta *dto.LoginMeta) (*md.User, dto.TokenPair, error)
	Login(ctx context.Context, req *dto.EmailAndPasswordRequest, meta *dto.LoginMeta) (*md.User, dto.TokenPair, error)
	RenewAccess(ctx context.Context, refresh string) (*md.User, string, error)
	Logout(ctx context.Context, uid uuid.UUID, refresh string, allDevices bool) error
}

type userCtrl interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (*md.User, error)
	UpdateSettings(ctx context.Context, uid uuid.UUID, req *dto.UpdateSettingsRequest) (*md.User, error)
	DeleteAccount(ctx context.Context, uid uuid.UUID) error
	ListLoginHistory(ctx context.Context, uid uuid.UUID) ([]md.LoginEntry, error)
	UploadAvatar(ctx context.Context, uid uuid.UUID, req *s3.UploadFileRequest) (*dto.UploadAvatarResponse, error)
}

type todoCtrl interface {
	CreateTodo(ctx context.Context, uid uuid.UUID, req *dto.CreateTodoRequest) (*md.Todo, error)
	ListTodos(ctx context.Context, u *md.User) ([]md.Todo, error)
	GetTodo(ctx context.Context, id, uid uuid.UUID) (*md.Todo, error)
	UpdateTodo(ctx context.Context, id, uid uuid.UUID, req *dto.UpdateTodoRequest) (*md.Todo, error)
	DeleteTodo(ctx context.Context, id, uid uuid.UUID) error
}

type CacheService interface {
	io.Closer
	GetToStruct(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, t time.Duration, key string, val any)
	Delete(ctx context.Context, key string)
	InvalidateKeysByPattern(ctx context.Context, pattern string)
}

type EmailService interface {
	SendWelcome(toEmail, name string) error
}

type FileStorage interface {
	Upload(ctx context.Context, req *s3.UploadFileRequest) (string, error)
}

type Controller struct {
	au    jwt.Port
	repo  AppRepo
	cache CacheService
	email EmailService
	files FileStorage
}

func New(
	au jwt.Port,
	repo AppRepo,
	cache CacheService,
	email EmailService,
	files FileStorage,
) *Controller {
	return &Controller{
		au:    au,
		repo:  repo,
		cache: cache,
		email: email,
		files: files,
	}
}
