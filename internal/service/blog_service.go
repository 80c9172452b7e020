package service

import (
	"context"
	"strings"
	"time"

	"github.com/blog-console/internal/constants"
	"github.com/blog-console/internal/markdown"
	"github.com/blog-console/internal/models"
	"github.com/blog-console/internal/repository"

	"github.com/jinzhu/copier"
	"golang.org/x/sync/errgroup"
)

const blogExcerptLength = 120

// BlogService 博客
type BlogService struct {
	blogRepo repository.BlogRepository
	userRepo repository.UserRepository
}

// NewBlogService 创建博客服务
func NewBlogService(blogRepo repository.BlogRepository, userRepo repository.UserRepository) *BlogService {
	return &BlogService{blogRepo: blogRepo, userRepo: userRepo}
}

// BlogInput 创建/更新博客
type BlogInput struct {
	Title    string `validate:"required,max=255"`
	Content  string
	Category string `validate:"max=64"`
	Tags     string `validate:"max=255"`
	Status   string
}

// BlogView 列表项，附带作者昵称与摘要
type BlogView struct {
	models.Blog
	AuthorNickname string   `json:"author_nickname"`
	TagList        []string `json:"tag_list"`
	Excerpt        string   `json:"excerpt"`
}

// BlogDetail 博客详情
type BlogDetail struct {
	BlogView
	ContentHTML string `json:"content_html"`
}

// BlogDirectoryMonth 按月分组的目录
type BlogDirectoryMonth struct {
	Month string                        `json:"month"`
	Blogs []repository.BlogDirectoryRow `json:"blogs"`
}

// BlogOverview 我的博客页聚合数据
type BlogOverview struct {
	Blogs     []BlogView           `json:"blogs"`
	Total     int64                `json:"total"`
	Page      int                  `json:"page"`
	Limit     int                  `json:"limit"`
	Directory []BlogDirectoryMonth `json:"directory"`
	Profile   *models.User         `json:"profile"`
}

func normalizeBlogInput(input *BlogInput) error {
	input.Title = strings.TrimSpace(input.Title)
	input.Category = strings.TrimSpace(input.Category)
	input.Tags = strings.Join(models.Blog{Tags: input.Tags}.TagList(), ",")
	input.Status = strings.TrimSpace(input.Status)
	if input.Status == "" {
		input.Status = constants.BlogStatusDraft
	}
	if input.Status != constants.BlogStatusDraft && input.Status != constants.BlogStatusPublished {
		return ErrBlogStatusInvalid
	}
	return ValidateDTO(input)
}

func toBlogView(blog models.Blog) BlogView {
	view := BlogView{
		Blog:    blog,
		TagList: blog.TagList(),
		Excerpt: markdown.Excerpt(blog.Content, blogExcerptLength),
	}
	if blog.Author != nil {
		view.AuthorNickname = blog.Author.Nickname
	}
	return view
}

func toBlogViews(blogs []models.Blog) []BlogView {
	views := make([]BlogView, 0, len(blogs))
	for _, blog := range blogs {
		views = append(views, toBlogView(blog))
	}
	return views
}

// Create 创建博客，作者为当前用户
func (s *BlogService) Create(userID uint, input BlogInput) (*models.Blog, error) {
	if err := normalizeBlogInput(&input); err != nil {
		return nil, err
	}
	blog := &models.Blog{UserID: userID, AuthorID: userID}
	if err := copier.Copy(blog, &input); err != nil {
		return nil, err
	}
	if err := s.blogRepo.Create(blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *BlogService) getOwned(userID, id uint) (*models.Blog, error) {
	blog, err := s.blogRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, ErrNotFound
	}
	if blog.AuthorID != userID {
		return nil, ErrForbidden
	}
	return blog, nil
}

// Update 仅作者可修改
func (s *BlogService) Update(userID, id uint, input BlogInput) (*models.Blog, error) {
	if err := normalizeBlogInput(&input); err != nil {
		return nil, err
	}
	blog, err := s.getOwned(userID, id)
	if err != nil {
		return nil, err
	}
	if err := copier.Copy(blog, &input); err != nil {
		return nil, err
	}
	if err := s.blogRepo.Update(blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// Delete 仅作者可删除，评论一并删除
func (s *BlogService) Delete(userID, id uint) error {
	if _, err := s.getOwned(userID, id); err != nil {
		return err
	}
	return s.blogRepo.Delete(id)
}

// Get 博客详情，正文渲染为 HTML
func (s *BlogService) Get(id uint) (*BlogDetail, error) {
	blog, err := s.blogRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, ErrNotFound
	}
	html, err := markdown.Render(blog.Content)
	if err != nil {
		return nil, err
	}
	return &BlogDetail{BlogView: toBlogView(*blog), ContentHTML: html}, nil
}

// ParseDay 解析 YYYY-MM-DD，返回当天 [起, 止)
func ParseDay(value string) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation(constants.DateLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, ErrDateInvalid
	}
	return day, day.AddDate(0, 0, 1), nil
}

// Feed 博客广场，每页 6 条，可按天筛选
func (s *BlogService) Feed(page int, date string) ([]BlogView, int64, error) {
	filter := repository.BlogListFilter{Page: page, Limit: constants.BlogFeedPageSize}
	if strings.TrimSpace(date) != "" {
		from, to, err := ParseDay(date)
		if err != nil {
			return nil, 0, err
		}
		filter.From = &from
		filter.To = &to
	}
	blogs, total, err := s.blogRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	return toBlogViews(blogs), total, nil
}

// ListByAuthor 指定作者的博客
func (s *BlogService) ListByAuthor(authorID uint, page, limit int) ([]BlogView, int64, error) {
	blogs, total, err := s.blogRepo.List(repository.BlogListFilter{Page: page, Limit: limit, AuthorID: authorID})
	if err != nil {
		return nil, 0, err
	}
	return toBlogViews(blogs), total, nil
}

// Directory 作者博客按 YYYY-MM 分组，月份倒序
func (s *BlogService) Directory(authorID uint) ([]BlogDirectoryMonth, error) {
	rows, err := s.blogRepo.ListDirectory(authorID)
	if err != nil {
		return nil, err
	}
	return GroupDirectoryByMonth(rows), nil
}

// GroupDirectoryByMonth rows 需已按创建时间倒序
func GroupDirectoryByMonth(rows []repository.BlogDirectoryRow) []BlogDirectoryMonth {
	months := make([]BlogDirectoryMonth, 0)
	index := make(map[string]int)
	for _, row := range rows {
		key := row.CreatedAt.In(time.Local).Format(constants.MonthLayout)
		i, ok := index[key]
		if !ok {
			i = len(months)
			index[key] = i
			months = append(months, BlogDirectoryMonth{Month: key})
		}
		months[i].Blogs = append(months[i].Blogs, row)
	}
	return months
}

// MyOverview 并发读取我的博客、目录与资料
func (s *BlogService) MyOverview(ctx context.Context, userID uint, page int) (*BlogOverview, error) {
	if page < 1 {
		page = 1
	}
	overview := &BlogOverview{Page: page, Limit: constants.BlogFeedPageSize}
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		blogs, total, err := s.ListByAuthor(userID, page, constants.BlogFeedPageSize)
		if err != nil {
			return err
		}
		overview.Blogs = blogs
		overview.Total = total
		return nil
	})
	g.Go(func() error {
		directory, err := s.Directory(userID)
		if err != nil {
			return err
		}
		overview.Directory = directory
		return nil
	})
	g.Go(func() error {
		profile, err := s.userRepo.GetByID(userID)
		if err != nil {
			return err
		}
		overview.Profile = profile
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overview, nil
}
