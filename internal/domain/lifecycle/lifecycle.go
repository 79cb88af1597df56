package lifecycle

// Status 实体生命周期状态
// 教学要点:
// 1. 软删除只有两个状态,持久化层用一个bool字段is_deleted即可
// 2. 定义Status类型是为了让状态机规则可读(日志输出、测试断言)
// 3. 状态值设计:1-2递增,便于理解流转方向
type Status int

const (
	StatusActive  Status = 1 // 活跃(默认查询可见)
	StatusDeleted Status = 2 // 已删除(逻辑删除,可恢复)
)

// String 实现Stringer接口(方便日志输出)
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "活跃"
	case StatusDeleted:
		return "已删除"
	default:
		return "未知状态"
	}
}

// Deletable 可软删除实体的能力接口
// 教学要点:
// 1. Book/Sale/User三个聚合都有软删除语义,转换规则只写一次
// 2. 聚合根通过嵌入SoftDelete获得实现,不需要逐个复制粘贴标志位逻辑
// 3. 接口只暴露标志位的读写,转换规则收敛在Machine中
type Deletable interface {
	// Deleted 返回实体是否处于已删除状态
	Deleted() bool

	// MarkDeleted 设置删除标志(仅状态机调用)
	MarkDeleted(deleted bool)
}

// SoftDelete 软删除标志(嵌入聚合根)
type SoftDelete struct {
	IsDeleted bool
}

// Deleted 实现Deletable接口
func (sd *SoftDelete) Deleted() bool {
	return sd.IsDeleted
}

// MarkDeleted 实现Deletable接口
func (sd *SoftDelete) MarkDeleted(deleted bool) {
	sd.IsDeleted = deleted
}

// Status 返回当前生命周期状态
func (sd *SoftDelete) Status() Status {
	if sd.IsDeleted {
		return StatusDeleted
	}
	return StatusActive
}

// Machine 软删除状态机
// 教学要点:
// 1. 合法转换只有两条:ACTIVE→DELETED(删除)、DELETED→ACTIVE(恢复)
// 2. 错误实例由各聚合注入,错误码和提示语保持领域专属
// 3. 状态机只改内存中的标志位,持久化由调用方负责(单次原子更新)
type Machine struct {
	// ErrAlreadyDeleted 删除已删除实体时返回
	ErrAlreadyDeleted error
	// ErrNotDeleted 恢复未删除实体时返回
	ErrNotDeleted error
	// ErrDeleted 默认查询命中已删除实体时返回
	ErrDeleted error
}

// Delete 执行ACTIVE→DELETED转换
func (m Machine) Delete(e Deletable) error {
	if e.Deleted() {
		return m.ErrAlreadyDeleted
	}
	e.MarkDeleted(true)
	return nil
}

// Restore 执行DELETED→ACTIVE转换
func (m Machine) Restore(e Deletable) error {
	if !e.Deleted() {
		return m.ErrNotDeleted
	}
	e.MarkDeleted(false)
	return nil
}

// EnsureVisible 默认查询的可见性检查
// include_deleted=false语义:已删除实体对默认查询不可见,命中时返回冲突错误
func (m Machine) EnsureVisible(e Deletable) error {
	if e.Deleted() {
		return m.ErrDeleted
	}
	return nil
}
