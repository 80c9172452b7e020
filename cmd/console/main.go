package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/blog-console/internal/client"
)

const usage = `用法: console [flags] <command>

命令:
  dashboard      收益仪表盘（聚合 + 第一页记录）
  blogs          公开博客流第一页
  notifications  我的未读通知数与最近通知

flags:
`

func main() {
	var (
		baseURL   string
		username  string
		password  string
		startDate string
		endDate   string
		timeout   time.Duration
	)
	flag.StringVar(&baseURL, "base", envOr("CONSOLE_BASE_URL", "http://127.0.0.1:8080/api"), "API 地址")
	flag.StringVar(&username, "user", os.Getenv("CONSOLE_USERNAME"), "登录用户名")
	flag.StringVar(&password, "pass", os.Getenv("CONSOLE_PASSWORD"), "登录密码")
	flag.StringVar(&startDate, "start", "", "开始日期 YYYY-MM-DD")
	flag.StringVar(&endDate, "end", "", "结束日期 YYYY-MM-DD")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "请求超时")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*timeout)
	defer cancel()

	c := client.New(baseURL, client.WithTimeout(timeout))
	if username != "" {
		if _, err := c.SignIn(ctx, username, password, nil); err != nil {
			fail("登录失败", err)
		}
	}

	var err error
	switch flag.Arg(0) {
	case "dashboard":
		err = printDashboard(ctx, c, client.RevenueFilter{StartDate: startDate, EndDate: endDate})
	case "blogs":
		err = printBlogs(ctx, c)
	case "notifications":
		err = printNotifications(ctx, c)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fail(flag.Arg(0)+" 失败", err)
	}
}

func printDashboard(ctx context.Context, c *client.Client, filter client.RevenueFilter) error {
	dashboard, err := c.Dashboard(ctx, filter)
	if err != nil {
		return err
	}
	s := dashboard.Summary
	fmt.Printf("员工 %d  收入 %.2f  支出 %.2f  订单 %d  平均ROI %.4f  整体ROI %.4f\n",
		s.EmployeeCount, s.TotalRevenue, s.TotalExpenditure, s.TotalOrderCount, s.AverageROI, s.OverallROI)
	if dashboard.LocalAggregate {
		fmt.Println("(服务端聚合不可用，以下为本页记录的本地聚合)")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "USER\tNICKNAME\tREVENUE\tEXPENDITURE\tORDERS\tADS\tAVG ROI")
	for _, row := range dashboard.Aggregates {
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%.2f\t%d\t%d\t%.4f\n", row.UserID, row.Nickname,
			row.TotalRevenue, row.TotalExpenditure, row.TotalOrderCount, row.TotalAdCreationCount, row.AverageROI)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("记录共 %d 条，第 1/%d 页\n", dashboard.Records.Pagination.Total, dashboard.Records.Pagination.TotalPages)
	return nil
}

func printBlogs(ctx context.Context, c *client.Client) error {
	page, err := c.BlogFeed(ctx, 1, "")
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tTAGS\tCREATED")
	for _, blog := range page.Items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", blog.ID, blog.Title, blog.AuthorNickname,
			strings.Join(blog.TagList, ","), blog.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func printNotifications(ctx context.Context, c *client.Client) error {
	count, err := c.UnreadCount(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("未读 %d 条\n", count)
	page, err := c.ListNotifications(ctx, 1, 10, "")
	if err != nil {
		return err
	}
	for _, n := range page.Items {
		fmt.Printf("[%s] %s %s\n", n.Status, n.CreatedAt.Format("01-02 15:04"), n.Content)
	}
	return nil
}

func fail(msg string, err error) {
	if client.IsUnauthorized(err) {
		msg += "（请使用 -user/-pass 登录）"
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
