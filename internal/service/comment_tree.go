package service

import "github.com/blog-console/internal/models"

// CommentNode 评论树节点
type CommentNode struct {
	CommentView
	Children []*CommentNode `json:"children"`
}

// BuildCommentTree 组装评论树，comments 需按 created_at, id 正序。
// 上级缺失或成环的评论提升为顶层。
func BuildCommentTree(comments []models.Comment) []*CommentNode {
	nodes := make(map[uint]*CommentNode, len(comments))
	parents := make(map[uint]uint, len(comments))
	for _, comment := range comments {
		nodes[comment.ID] = &CommentNode{CommentView: toCommentView(comment), Children: []*CommentNode{}}
		if comment.ParentID != nil {
			parents[comment.ID] = *comment.ParentID
		}
	}

	roots := make([]*CommentNode, 0)
	for _, comment := range comments {
		node := nodes[comment.ID]
		parentID, hasParent := parents[comment.ID]
		parent, found := nodes[parentID]
		if !hasParent || !found || inCycle(comment.ID, parents) {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}
	return roots
}

func inCycle(id uint, parents map[uint]uint) bool {
	seen := map[uint]struct{}{id: {}}
	current := id
	for {
		next, ok := parents[current]
		if !ok {
			return false
		}
		if next == id {
			return true
		}
		if _, visited := seen[next]; visited {
			return false
		}
		seen[next] = struct{}{}
		current = next
	}
}
