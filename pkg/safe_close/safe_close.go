// Package safe_close 提供服务组件的优雅关闭协调
package safe_close

import (
	"sync"
)

// SafeClose 协调多个后台组件的关闭：
// 组件通过 Attach 注册，收到关闭信号后自行退出并调用 done，
// WaitClosed 等待所有组件退出
type SafeClose struct {
	mu          sync.Mutex
	closeSignal chan struct{}
	closed      bool
	closeErr    error
	wg          sync.WaitGroup
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach 注册一个后台组件
// f 在新 goroutine 中运行，必须监听 closeSignal 并在退出时调用 done
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	done := func() {
		s.wg.Done()
	}
	go f(done, s.closeSignal)
}

// SendCloseSignal 发出关闭信号，首个错误会被记录
// 多次调用安全，只有第一次生效
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.closeErr = err
	close(s.closeSignal)
}

// ReceiveCloseSignal 返回关闭信号通道
func (s *SafeClose) ReceiveCloseSignal() <-chan struct{} {
	return s.closeSignal
}

// WaitClosed 阻塞直到所有已注册的组件退出，返回触发关闭的错误
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeErr
}
