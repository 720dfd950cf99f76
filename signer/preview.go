package signer

import (
	"context"
	"sync"

	"github.com/MixinNetwork/mixin/logger"
)

// Preview derives addresses in the background for interactive input. Only
// the most recently submitted request delivers its result, every earlier
// one is canceled and silently dropped.
type Preview struct {
	signer   *Signer
	deliver  func(*Request, *Account, error)
	mutex    sync.Mutex
	sequence uint64
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewPreview takes a deliver callback that runs with the preview lock held,
// it must not call Submit.
func NewPreview(s *Signer, deliver func(*Request, *Account, error)) *Preview {
	return &Preview{signer: s, deliver: deliver}
}

func (p *Preview) Submit(ctx context.Context, req *Request) uint64 {
	ctx, seq := p.begin(ctx)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		acc, err := p.signer.DeriveAccount(ctx, req)
		if !p.finish(seq, req, acc, err) {
			logger.Verbosef("Preview.Submit(%s, %d) stale", req.Id, seq)
		}
	}()
	return seq
}

func (p *Preview) Wait() {
	p.wg.Wait()
}

func (p *Preview) Cancel() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.sequence++
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *Preview) begin(ctx context.Context) (context.Context, uint64) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
	p.sequence++
	ctx, p.cancel = context.WithCancel(ctx)
	return ctx, p.sequence
}

func (p *Preview) finish(seq uint64, req *Request, acc *Account, err error) bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if seq != p.sequence {
		return false
	}
	p.cancel()
	p.cancel = nil
	p.deliver(req, acc, err)
	return true
}
