package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Job 定时任务；content.Fetcher 通过 Warm 预热缓存
type Job interface {
	Name() string
	Warm(ctx context.Context)
}

type Scheduler struct {
	cron         *cron.Cron
	jobs         []Job
	timeout      time.Duration
	startupDelay time.Duration

	mu      sync.Mutex
	startup *time.Timer
	stopped bool
	// warming 只跟踪启动预热；cron 触发的任务由 cron.Stop 等待
	warming sync.WaitGroup
}

// New spec 为标准 5 段 cron 表达式；每轮每个任务的超时为 timeout（<=0 表示不限制）
func New(spec string, timeout time.Duration, jobs ...Job) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:    c,
		jobs:    jobs,
		timeout: timeout,
		// 延迟执行首轮预热，避免与用户首次打开页面的请求争抢配额
		startupDelay: 15 * time.Second,
	}

	_, err := c.AddFunc(spec, s.runOnce)
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startup = time.AfterFunc(s.startupDelay, func() {
		s.mu.Lock()
		if s.stopped {
			s.mu.Unlock()
			return
		}
		s.warming.Add(1)
		s.mu.Unlock()
		defer s.warming.Done()
		s.runOnce()
	})
}

// Stop 停止调度，取消尚未触发的启动预热，并等待所有正在执行的任务结束
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	if s.startup != nil {
		s.startup.Stop()
	}
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	s.warming.Wait()
}

// RunOnce 对外暴露的单次执行入口，方便手动触发预热
func (s *Scheduler) RunOnce() {
	s.runOnce()
}

// NextRun 下一次 cron 触发时间；未启动时为零值
func (s *Scheduler) NextRun() time.Time {
	var next time.Time
	for _, e := range s.cron.Entries() {
		if next.IsZero() || (!e.Next.IsZero() && e.Next.Before(next)) {
			next = e.Next
		}
	}
	return next
}

func (s *Scheduler) runOnce() {
	log.Println("start warm job...")

	var wg sync.WaitGroup
	for _, j := range s.jobs {
		job := j
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx := context.Background()
			if s.timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, s.timeout)
				defer cancel()
			}
			start := time.Now()
			job.Warm(ctx)
			log.Printf("%s done in %s", job.Name(), time.Since(start).Round(time.Millisecond))
		}()
	}

	wg.Wait()
	log.Println("warm job done (all jobs)")
}
