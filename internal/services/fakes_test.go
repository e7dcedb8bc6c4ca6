package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"os-system/internal/dto"
	"os-system/internal/entities"
	"os-system/pkg/constants"
	apperrors "os-system/pkg/errors"
)

// Fakes em memória dos repositórios. pgx.Tx é interface, então os métodos
// transacionais recebem nil nos testes; o fakeTxManager apenas executa fn.

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fakeOSRepo struct {
	ordens []*entities.OrdemServico
	locks  []string
}

func (r *fakeOSRepo) CreateInTx(ctx context.Context, tx pgx.Tx, os *entities.OrdemServico) error {
	for _, o := range r.ordens {
		if o.EmpresaID == os.EmpresaID && o.NumeroOS == os.NumeroOS {
			return apperrors.ErrConflito
		}
	}
	clone := *os
	r.ordens = append(r.ordens, &clone)
	return nil
}

func (r *fakeOSRepo) UpdateInTx(ctx context.Context, tx pgx.Tx, os *entities.OrdemServico) error {
	for i, o := range r.ordens {
		if o.ID == os.ID && o.EmpresaID == os.EmpresaID {
			clone := *os
			r.ordens[i] = &clone
			return nil
		}
	}
	return apperrors.ErrNaoEncontrado
}

func (r *fakeOSRepo) find(id uuid.UUID) (*entities.OrdemServico, error) {
	for _, o := range r.ordens {
		if o.ID == id {
			clone := *o
			return &clone, nil
		}
	}
	return nil, apperrors.ErrNaoEncontrado
}

func (r *fakeOSRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.OrdemServico, error) {
	return r.find(id)
}

func (r *fakeOSRepo) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.OrdemServico, error) {
	return r.find(id)
}

func (r *fakeOSRepo) List(ctx context.Context, empresaID uuid.UUID, filter dto.ListOSFilter) ([]entities.OrdemServico, uint64, error) {
	out := make([]entities.OrdemServico, 0)
	for _, o := range r.ordens {
		if o.EmpresaID != empresaID {
			continue
		}
		if filter.TecnicoID != nil && (o.TecnicoID == nil || *o.TecnicoID != *filter.TecnicoID) {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.Prioridade != "" && o.Prioridade != filter.Prioridade {
			continue
		}
		if filter.Search != "" && !buscaCorresponde(o, filter.Search) {
			continue
		}
		out = append(out, *o)
	}
	return out, uint64(len(out)), nil
}

// buscaCorresponde espelha o ILIKE do repositório real: numero_os, tipo,
// status e observacoes, sem diferenciar maiúsculas.
func buscaCorresponde(o *entities.OrdemServico, termo string) bool {
	termo = strings.ToLower(termo)
	campos := []string{o.NumeroOS, o.Tipo, o.Status, o.Observacoes.String}
	for _, campo := range campos {
		if strings.Contains(strings.ToLower(campo), termo) {
			return true
		}
	}
	return false
}

func (r *fakeOSRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, o := range r.ordens {
		if o.ID == id {
			r.ordens = append(r.ordens[:i], r.ordens[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNaoEncontrado
}

func (r *fakeOSRepo) TravarNumeracao(ctx context.Context, tx pgx.Tx, empresaID uuid.UUID, ano int) error {
	r.locks = append(r.locks, fmt.Sprintf("%s:%d", empresaID, ano))
	return nil
}

func (r *fakeOSRepo) UltimoNumeroDoAno(ctx context.Context, tx pgx.Tx, empresaID uuid.UUID, ano int) (string, error) {
	ultimo := ""
	sufixo := fmt.Sprintf("-%d", ano)
	for _, o := range r.ordens {
		if o.EmpresaID == empresaID && strings.HasPrefix(o.NumeroOS, "OS-") && strings.HasSuffix(o.NumeroOS, sufixo) {
			ultimo = o.NumeroOS
		}
	}
	return ultimo, nil
}

func (r *fakeOSRepo) emAtendimento(empresaID, tecnicoID uuid.UUID, excetoOS *uuid.UUID) (bool, error) {
	for _, o := range r.ordens {
		if o.EmpresaID != empresaID || o.TecnicoID == nil || *o.TecnicoID != tecnicoID {
			continue
		}
		if excetoOS != nil && o.ID == *excetoOS {
			continue
		}
		if constants.IsEmAtendimento(o.Status) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeOSRepo) TecnicoEmAtendimento(ctx context.Context, empresaID, tecnicoID uuid.UUID, excetoOS *uuid.UUID) (bool, error) {
	return r.emAtendimento(empresaID, tecnicoID, excetoOS)
}

func (r *fakeOSRepo) TecnicoEmAtendimentoInTx(ctx context.Context, tx pgx.Tx, empresaID, tecnicoID uuid.UUID, excetoOS *uuid.UUID) (bool, error) {
	return r.emAtendimento(empresaID, tecnicoID, excetoOS)
}

type fakeHistoryRepo struct {
	eventos []entities.OSStatusHistory
}

func (r *fakeHistoryRepo) CreateInTx(ctx context.Context, tx pgx.Tx, h *entities.OSStatusHistory) error {
	r.eventos = append(r.eventos, *h)
	return nil
}

func (r *fakeHistoryRepo) FindByOSID(ctx context.Context, empresaID, osID uuid.UUID) ([]entities.OSStatusHistory, error) {
	out := make([]entities.OSStatusHistory, 0)
	for i := len(r.eventos) - 1; i >= 0; i-- {
		if r.eventos[i].OSID == osID {
			out = append(out, r.eventos[i])
		}
	}
	return out, nil
}

func (r *fakeHistoryRepo) doOS(osID uuid.UUID) []entities.OSStatusHistory {
	out := make([]entities.OSStatusHistory, 0)
	for _, h := range r.eventos {
		if h.OSID == osID {
			out = append(out, h)
		}
	}
	return out
}

type fakeChecklistRepo struct {
	itens map[uuid.UUID][]entities.ChecklistItem
}

func newFakeChecklistRepo() *fakeChecklistRepo {
	return &fakeChecklistRepo{itens: make(map[uuid.UUID][]entities.ChecklistItem)}
}

func (r *fakeChecklistRepo) SeedInTx(ctx context.Context, tx pgx.Tx, osID uuid.UUID, descricoes []string) error {
	for i, d := range descricoes {
		r.itens[osID] = append(r.itens[osID], entities.ChecklistItem{
			ID:        uuid.New(),
			OSID:      osID,
			Descricao: d,
			Ordem:     i + 1,
		})
	}
	return nil
}

func (r *fakeChecklistRepo) FindByOSID(ctx context.Context, empresaID, osID uuid.UUID) ([]entities.ChecklistItem, error) {
	return r.itens[osID], nil
}

func (r *fakeChecklistRepo) UpdateStatus(ctx context.Context, empresaID, osID, itemID uuid.UUID, status string) (*entities.ChecklistItem, error) {
	for i := range r.itens[osID] {
		if r.itens[osID][i].ID == itemID {
			r.itens[osID][i].Status.SetValid(status)
			item := r.itens[osID][i]
			return &item, nil
		}
	}
	return nil, apperrors.ErrNaoEncontrado
}

func (r *fakeChecklistRepo) CountPendentes(ctx context.Context, osID uuid.UUID) (int, error) {
	count := 0
	for _, item := range r.itens[osID] {
		if !item.Status.Valid {
			count++
		}
	}
	return count, nil
}

type fakeEvidenciaRepo struct {
	evidencias []entities.Evidencia
}

func (r *fakeEvidenciaRepo) Create(ctx context.Context, e *entities.Evidencia) error {
	r.evidencias = append(r.evidencias, *e)
	return nil
}

func (r *fakeEvidenciaRepo) FindByOSID(ctx context.Context, empresaID, osID uuid.UUID) ([]entities.Evidencia, error) {
	out := make([]entities.Evidencia, 0)
	for _, e := range r.evidencias {
		if e.OSID == osID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeLaudoRepo struct {
	laudos map[uuid.UUID]*entities.Laudo
}

func newFakeLaudoRepo() *fakeLaudoRepo {
	return &fakeLaudoRepo{laudos: make(map[uuid.UUID]*entities.Laudo)}
}

func (r *fakeLaudoRepo) FindByOSID(ctx context.Context, empresaID, osID uuid.UUID) (*entities.Laudo, error) {
	l, ok := r.laudos[osID]
	if !ok {
		return nil, apperrors.ErrNaoEncontrado
	}
	clone := *l
	return &clone, nil
}

func (r *fakeLaudoRepo) Upsert(ctx context.Context, l *entities.Laudo) error {
	if atual, ok := r.laudos[l.OSID]; ok {
		atual.OQueFoiFeito = l.OQueFoiFeito
		atual.Observacao = l.Observacao
		l.ID = atual.ID
		return nil
	}
	clone := *l
	r.laudos[l.OSID] = &clone
	return nil
}

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*entities.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*entities.Profile)}
}

func (r *fakeProfileRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entities.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, apperrors.ErrPerfilNaoEncontrado
	}
	clone := *p
	return &clone, nil
}

func (r *fakeProfileRepo) SetImpersonation(ctx context.Context, userID uuid.UUID, empresaID *uuid.UUID) error {
	p, ok := r.profiles[userID]
	if !ok || !p.IsPlatformAdmin {
		return apperrors.ErrAcessoNegado
	}
	p.ImpersonatingEmpresaID = empresaID
	return nil
}

type fakeProfileCache struct {
	cached map[uuid.UUID]*entities.Profile
	hits   int
}

func newFakeProfileCache() *fakeProfileCache {
	return &fakeProfileCache{cached: make(map[uuid.UUID]*entities.Profile)}
}

func (c *fakeProfileCache) Get(ctx context.Context, userID uuid.UUID) (*entities.Profile, bool) {
	p, ok := c.cached[userID]
	if ok {
		c.hits++
		clone := *p
		return &clone, true
	}
	return nil, false
}

func (c *fakeProfileCache) Set(ctx context.Context, p *entities.Profile) {
	clone := *p
	c.cached[p.UserID] = &clone
}

func (c *fakeProfileCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	delete(c.cached, userID)
}
