package public

import "github.com/blog-console/internal/provider"

// Handler 用户侧接口处理器入口
// 说明：登录注册、个人资料、博客、评论、收益、通知与充值接口。
type Handler struct {
	*provider.Container
}

// New 创建用户侧处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
