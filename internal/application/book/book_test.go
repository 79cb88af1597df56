package book

import (
	"context"
	"testing"

	"github.com/xiebiao/libreria/internal/domain/book"
	"github.com/xiebiao/libreria/internal/domain/lifecycle"
	"github.com/xiebiao/libreria/internal/domain/pagination"
)

// fakeService 领域服务打桩(测试用)
// 记录调用参数,返回预设结果
type fakeService struct {
	book  *book.Book
	books []*book.Book
	total int64
	err   error

	gotTitle  string
	gotID     uint
	gotPatch  book.Patch
	gotParams pagination.Params
}

func (f *fakeService) CreateBook(_ context.Context, title, author, category string, price float64, stock int) (*book.Book, error) {
	f.gotTitle = title
	return f.book, f.err
}

func (f *fakeService) GetBook(_ context.Context, id uint) (*book.Book, error) {
	f.gotID = id
	return f.book, f.err
}

func (f *fakeService) UpdateBook(_ context.Context, id uint, patch book.Patch) (*book.Book, error) {
	f.gotID = id
	f.gotPatch = patch
	return f.book, f.err
}

func (f *fakeService) DeleteBook(_ context.Context, id uint) (*book.Book, error) {
	f.gotID = id
	return f.book, f.err
}

func (f *fakeService) RestoreBook(_ context.Context, id uint) (*book.Book, error) {
	f.gotID = id
	return f.book, f.err
}

func (f *fakeService) ListBooks(_ context.Context, params pagination.Params) ([]*book.Book, int64, error) {
	f.gotParams = params
	return f.books, f.total, f.err
}

// sampleBook 测试夹具
func sampleBook() *book.Book {
	return &book.Book{
		ID:       1,
		Title:    "百年孤独",
		Author:   "Gabriel García Márquez",
		Category: "小说",
		Price:    45.0,
		Stock:    8,
	}
}

// TestCreateBookUseCase 测试录入用例的DTO转换
func TestCreateBookUseCase(t *testing.T) {
	svc := &fakeService{book: sampleBook()}
	uc := NewCreateBookUseCase(svc)

	view, err := uc.Execute(context.Background(), CreateBookRequest{
		Title:    "百年孤独",
		Author:   "Gabriel García Márquez",
		Category: "小说",
		Price:    45.0,
		Stock:    8,
	})
	if err != nil {
		t.Fatalf("期望执行成功,实际失败: %v", err)
	}

	if svc.gotTitle != "百年孤独" {
		t.Errorf("传递给领域服务的书名不正确: %s", svc.gotTitle)
	}
	if view.ID != 1 || view.Title != "百年孤独" || view.Price != 45.0 || view.Stock != 8 {
		t.Errorf("响应DTO字段不匹配: %+v", view)
	}
	if view.IsDeleted {
		t.Error("新建图书的is_deleted应为false")
	}
}

// TestCreateBookUseCase_Error 领域错误应原样透传
func TestCreateBookUseCase_Error(t *testing.T) {
	svc := &fakeService{err: book.ErrTitleDuplicate}
	uc := NewCreateBookUseCase(svc)

	_, err := uc.Execute(context.Background(), CreateBookRequest{Title: "重复的书"})
	if err != book.ErrTitleDuplicate {
		t.Errorf("期望ErrTitleDuplicate,实际%v", err)
	}
}

// TestGetBookUseCase 测试详情查询用例
func TestGetBookUseCase(t *testing.T) {
	svc := &fakeService{book: sampleBook()}
	uc := NewGetBookUseCase(svc)

	view, err := uc.Execute(context.Background(), 1)
	if err != nil {
		t.Fatalf("期望查询成功,实际失败: %v", err)
	}
	if svc.gotID != 1 {
		t.Errorf("期望查询ID=1,实际%d", svc.gotID)
	}
	if view.Author != "Gabriel García Márquez" {
		t.Errorf("作者不匹配: %s", view.Author)
	}
}

// TestListBooksUseCase 测试列表用例的分页参数传递与转换
func TestListBooksUseCase(t *testing.T) {
	b1 := sampleBook()
	b2 := sampleBook()
	b2.ID = 2
	b2.Title = "霍乱时期的爱情"

	svc := &fakeService{books: []*book.Book{b1, b2}, total: 7}
	uc := NewListBooksUseCase(svc)

	resp, err := uc.Execute(context.Background(), ListBooksRequest{Skip: 2, Limit: 2})
	if err != nil {
		t.Fatalf("期望查询成功,实际失败: %v", err)
	}

	if svc.gotParams.Skip != 2 || svc.gotParams.Limit != 2 {
		t.Errorf("分页参数传递错误: %+v", svc.gotParams)
	}
	if len(resp.List) != 2 {
		t.Fatalf("期望返回2条,实际%d条", len(resp.List))
	}
	if resp.Total != 7 {
		t.Errorf("期望总数7,实际%d", resp.Total)
	}
	if resp.Skip != 2 || resp.Limit != 2 {
		t.Errorf("响应应回显分页参数: skip=%d limit=%d", resp.Skip, resp.Limit)
	}
	if resp.List[1].Title != "霍乱时期的爱情" {
		t.Errorf("列表顺序或转换错误: %s", resp.List[1].Title)
	}
}

// TestUpdateBookUseCase 测试部分更新的字段映射
func TestUpdateBookUseCase(t *testing.T) {
	updated := sampleBook()
	updated.Price = 52.0
	svc := &fakeService{book: updated}
	uc := NewUpdateBookUseCase(svc)

	price := 52.0
	view, err := uc.Execute(context.Background(), UpdateBookRequest{ID: 1, Price: &price})
	if err != nil {
		t.Fatalf("期望更新成功,实际失败: %v", err)
	}

	if svc.gotID != 1 {
		t.Errorf("期望更新ID=1,实际%d", svc.gotID)
	}
	if svc.gotPatch.Price == nil || *svc.gotPatch.Price != 52.0 {
		t.Errorf("Patch.Price传递错误: %+v", svc.gotPatch)
	}
	if svc.gotPatch.Title != nil || svc.gotPatch.Stock != nil {
		t.Error("未传入的字段在Patch中应保持nil")
	}
	if view.Price != 52.0 {
		t.Errorf("期望价格52.0,实际%v", view.Price)
	}
}

// TestDeleteBookUseCase 删除响应应携带is_deleted=true
func TestDeleteBookUseCase(t *testing.T) {
	deleted := sampleBook()
	deleted.SoftDelete = lifecycle.SoftDelete{IsDeleted: true}
	svc := &fakeService{book: deleted}
	uc := NewDeleteBookUseCase(svc)

	view, err := uc.Execute(context.Background(), 1)
	if err != nil {
		t.Fatalf("期望删除成功,实际失败: %v", err)
	}
	if !view.IsDeleted {
		t.Error("删除后的响应is_deleted应为true")
	}
}

// TestRestoreBookUseCase 恢复错误应原样透传
func TestRestoreBookUseCase(t *testing.T) {
	svc := &fakeService{err: book.ErrBookNotDeleted}
	uc := NewRestoreBookUseCase(svc)

	_, err := uc.Execute(context.Background(), 1)
	if err != book.ErrBookNotDeleted {
		t.Errorf("期望ErrBookNotDeleted,实际%v", err)
	}
}
