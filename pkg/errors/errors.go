// Package errors 存放跨层共享的哨兵错误
// 业务域内的错误由各 Service 自行定义，这里只放仓储层与多个模块共用的。
package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：带 version 字段的记录已被其他操作修改
// 模板字段整体替换时由仓储层返回，Handler 映射为 409。
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")
