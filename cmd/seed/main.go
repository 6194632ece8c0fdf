package main

import (
	"context"
	"fmt"

	"github.com/d60-Lab/post-review/config"
	"github.com/d60-Lab/post-review/internal/model"
	"github.com/d60-Lab/post-review/internal/repository"
	"github.com/d60-Lab/post-review/internal/service"
	"github.com/d60-Lab/post-review/pkg/database"
	"github.com/d60-Lab/post-review/pkg/logger"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func mustDo(err error) {
	if err != nil {
		panic(err)
	}
}

// 演示数据：一个 admin、一个 manager、三个 author，
// 帖子走正常生命周期入库（审计日志随之产生）
func main() {
	cfg := must(config.Load())
	mustDo(logger.Init(cfg.Log.Level))
	db := must(database.InitDB(cfg))

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	logRepo := repository.NewPostLogRepository(db)
	// seed 不需要 token，store 传 nil 即可（只用 Register）
	authSvc := service.NewAuthService(userRepo, nil, cfg.JWT.Secret, cfg.JWT.TTL)
	postSvc := service.NewPostService(db, postRepo, logRepo)

	ctx := context.Background()

	type seedUser struct {
		name  string
		email string
		role  model.Role
	}
	seedUsers := []seedUser{
		{"Admin User", "admin@example.com", model.RoleAdmin},
		{"Manager User", "manager@example.com", model.RoleManager},
		{"Author User", "author@example.com", model.RoleAuthor},
		{"John Doe", "john@example.com", model.RoleAuthor},
		{"Jane Smith", "jane@example.com", model.RoleAuthor},
	}

	users := map[string]*model.User{}
	for _, su := range seedUsers {
		if existing := must(userRepo.FindByEmail(ctx, su.email)); existing != nil {
			users[su.email] = existing
			continue
		}
		u := must(authSvc.Register(ctx, service.RegisterInput{
			Name:     su.name,
			Email:    su.email,
			Password: "password",
			Role:     su.role,
		}))
		users[su.email] = u
		fmt.Printf("created user %s (%s)\n", su.email, su.role)
	}

	admin := users["admin@example.com"]
	manager := users["manager@example.com"]
	authors := []*model.User{
		users["author@example.com"],
		users["john@example.com"],
		users["jane@example.com"],
	}

	type seedPost struct {
		title  string
		body   string
		action string // "" / "approve" / "reject"
		reason string
	}
	seedPosts := []seedPost{
		{"Introduction to Go Modules", "Go modules bring reproducible builds and a sane dependency story.", "", ""},
		{"Understanding Role-Based Access Control", "RBAC keeps permission checks small and auditable. Best practices inside.", "approve", ""},
		{"Building RESTful APIs", "RESTful APIs are the backbone of modern web applications.", "", ""},
		{"Database Optimization Tips", "Optimizing queries is essential for performance.", "reject", "Content needs more technical depth and examples."},
		{"Clean Code Principles", "Writing clean, maintainable code is an art.", "approve", ""},
	}

	for i, sp := range seedPosts {
		author := authors[i%len(authors)]
		post := must(postSvc.Create(ctx, author, service.CreatePostInput{Title: sp.title, Body: sp.body}))
		switch sp.action {
		case "approve":
			must(postSvc.Approve(ctx, admin, post.ID))
		case "reject":
			must(postSvc.Reject(ctx, manager, post.ID, sp.reason))
		}
		fmt.Printf("created post %q by %s\n", sp.title, author.Email)
	}

	fmt.Println("seed done")
}
