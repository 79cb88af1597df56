package book

import (
	"context"
	"testing"

	"github.com/xiebiao/libreria/internal/domain/pagination"
	apperrors "github.com/xiebiao/libreria/pkg/errors"
)

// fakeRepo 内存仓储(测试用)
type fakeRepo struct {
	books  map[uint]*Book
	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{books: make(map[uint]*Book), nextID: 1}
}

func (r *fakeRepo) Create(_ context.Context, b *Book) error {
	b.ID = r.nextID
	r.nextID++
	clone := *b
	r.books[b.ID] = &clone
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id uint) (*Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, ErrBookNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *fakeRepo) FindByTitle(_ context.Context, title string) (*Book, error) {
	for _, b := range r.books {
		if b.Title == title {
			clone := *b
			return &clone, nil
		}
	}
	return nil, ErrBookNotFound
}

func (r *fakeRepo) Update(_ context.Context, b *Book) error {
	if _, ok := r.books[b.ID]; !ok {
		return ErrBookNotFound
	}
	clone := *b
	r.books[b.ID] = &clone
	return nil
}

func (r *fakeRepo) List(_ context.Context, params pagination.Params) ([]*Book, int64, error) {
	var visible []*Book
	for id := uint(1); id < r.nextID; id++ {
		if b, ok := r.books[id]; ok && !b.Deleted() {
			clone := *b
			visible = append(visible, &clone)
		}
	}
	total := int64(len(visible))
	if params.Skip >= len(visible) {
		return nil, total, nil
	}
	end := params.Skip + params.Limit
	if end > len(visible) {
		end = len(visible)
	}
	return visible[params.Skip:end], total, nil
}

func (r *fakeRepo) UpdateStock(_ context.Context, id uint, delta int) error {
	b, ok := r.books[id]
	if !ok {
		return ErrBookNotFound
	}
	if b.Stock+delta < 0 {
		return ErrInsufficientStock
	}
	b.Stock += delta
	return nil
}

func newTestService() (Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo), repo
}

// TestService_CreateBook 测试图书创建与重名检查
func TestService_CreateBook(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateBook(ctx, "百年孤独", "Gabriel García Márquez", "小说", 45.0, 8)
	if err != nil {
		t.Fatalf("期望创建成功,实际失败: %v", err)
	}
	if created.ID == 0 {
		t.Error("创建后应分配ID")
	}

	// 重名应返回冲突
	_, err = svc.CreateBook(ctx, "百年孤独", "另一个作者", "小说", 30.0, 3)
	if err != ErrTitleDuplicate {
		t.Errorf("期望ErrTitleDuplicate,实际%v", err)
	}
}

// TestService_CreateBook_DeletedTitleStillBlocks 已删除图书的书名仍然占用
func TestService_CreateBook_DeletedTitleStillBlocks(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateBook(ctx, "已删除的书", "作者", "分类", 10, 1)
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if _, err := svc.DeleteBook(ctx, created.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}

	// 重名检查不排除已删除记录
	_, err = svc.CreateBook(ctx, "已删除的书", "新作者", "分类", 20, 2)
	if err != ErrTitleDuplicate {
		t.Errorf("期望ErrTitleDuplicate,实际%v", err)
	}
}

// TestService_GetBook 测试默认查询语义
func TestService_GetBook(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	// 不存在返回NotFound
	_, err := svc.GetBook(ctx, 999)
	if err != ErrBookNotFound {
		t.Errorf("期望ErrBookNotFound,实际%v", err)
	}

	created, _ := svc.CreateBook(ctx, "书名", "作者", "分类", 10, 5)
	if _, err := svc.GetBook(ctx, created.ID); err != nil {
		t.Errorf("期望查询成功,实际%v", err)
	}

	// 已删除返回Conflict
	if _, err := svc.DeleteBook(ctx, created.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	_, err = svc.GetBook(ctx, created.ID)
	if err != ErrBookDeleted {
		t.Errorf("期望ErrBookDeleted,实际%v", err)
	}
}

// TestService_DeleteRestore 测试删除/恢复状态机
func TestService_DeleteRestore(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, _ := svc.CreateBook(ctx, "书名", "作者", "分类", 10, 5)

	// 恢复未删除的图书应返回冲突
	if _, err := svc.RestoreBook(ctx, created.ID); err != ErrBookNotDeleted {
		t.Errorf("期望ErrBookNotDeleted,实际%v", err)
	}

	if _, err := svc.DeleteBook(ctx, created.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}

	// 重复删除应返回冲突
	if _, err := svc.DeleteBook(ctx, created.ID); err != ErrBookAlreadyDeleted {
		t.Errorf("期望ErrBookAlreadyDeleted,实际%v", err)
	}

	// 恢复后默认查询应重新可见
	if _, err := svc.RestoreBook(ctx, created.ID); err != nil {
		t.Fatalf("恢复失败: %v", err)
	}
	got, err := svc.GetBook(ctx, created.ID)
	if err != nil {
		t.Fatalf("恢复后查询失败: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("期望ID=%d,实际%d", created.ID, got.ID)
	}

	// 不存在的ID删除/恢复都返回NotFound
	if _, err := svc.DeleteBook(ctx, 999); err != ErrBookNotFound {
		t.Errorf("期望ErrBookNotFound,实际%v", err)
	}
	if _, err := svc.RestoreBook(ctx, 999); err != ErrBookNotFound {
		t.Errorf("期望ErrBookNotFound,实际%v", err)
	}
}

// TestService_UpdateBook 测试部分更新
func TestService_UpdateBook(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, _ := svc.CreateBook(ctx, "书名", "作者", "分类", 10, 5)

	stock := 42
	updated, err := svc.UpdateBook(ctx, created.ID, Patch{Stock: &stock})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if updated.Stock != 42 {
		t.Errorf("期望库存42,实际%d", updated.Stock)
	}

	// 非法字段被校验拦截
	badPrice := 0.0
	if _, err := svc.UpdateBook(ctx, created.ID, Patch{Price: &badPrice}); err != ErrPriceEmpty {
		t.Errorf("期望ErrPriceEmpty,实际%v", err)
	}

	// 已删除的图书不可更新
	if _, err := svc.DeleteBook(ctx, created.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if _, err := svc.UpdateBook(ctx, created.ID, Patch{Stock: &stock}); err != ErrBookDeleted {
		t.Errorf("期望ErrBookDeleted,实际%v", err)
	}
}

// TestService_ListBooks 测试分页查询
func TestService_ListBooks(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	// 空结果返回NotFound
	_, _, err := svc.ListBooks(ctx, pagination.Default())
	if err != ErrNoBooksFound {
		t.Errorf("期望ErrNoBooksFound,实际%v", err)
	}

	titles := []string{"书一", "书二", "书三"}
	for _, title := range titles {
		if _, err := svc.CreateBook(ctx, title, "作者", "分类", 10, 1); err != nil {
			t.Fatalf("创建%s失败: %v", title, err)
		}
	}

	books, total, err := svc.ListBooks(ctx, pagination.Params{Skip: 1, Limit: 10})
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if total != 3 {
		t.Errorf("期望总数3,实际%d", total)
	}
	if len(books) != 2 {
		t.Errorf("期望返回2条,实际%d条", len(books))
	}

	// 非法分页参数返回校验错误
	_, _, err = svc.ListBooks(ctx, pagination.Params{Skip: -1, Limit: 10})
	if !apperrors.Is(err, apperrors.ErrInvalidPagination) {
		t.Errorf("期望ErrInvalidPagination,实际%v", err)
	}

	// 已删除的图书不出现在列表中
	first, _ := svc.GetBook(ctx, 1)
	if _, err := svc.DeleteBook(ctx, first.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	books, total, err = svc.ListBooks(ctx, pagination.Default())
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if total != 2 || len(books) != 2 {
		t.Errorf("期望剩余2条,实际total=%d len=%d", total, len(books))
	}
}
