package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"github.com/stocktakehq/stocktake/modules/assets/domain/aggregates/asset"
	"github.com/stocktakehq/stocktake/modules/assets/domain/aggregates/container"
	"github.com/stocktakehq/stocktake/modules/assets/domain/entities/member"
	"github.com/stocktakehq/stocktake/pkg/composables"
	"github.com/stocktakehq/stocktake/pkg/eventbus"
)

// stubTx satisfies pgx.Tx so service calls reuse it instead of opening a
// real transaction. The in-memory repositories never touch it.
type stubTx struct{}

func (stubTx) Begin(ctx context.Context) (pgx.Tx, error) { return stubTx{}, nil }
func (stubTx) Commit(ctx context.Context) error          { return nil }
func (stubTx) Rollback(ctx context.Context) error        { return nil }
func (stubTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (stubTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (stubTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (stubTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (stubTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (stubTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, pgx.ErrNoRows
}
func (stubTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (stubTx) Conn() *pgx.Conn                                               { return nil }

func zeroTime() time.Time { return time.Time{} }

func testContext(tenantID uuid.UUID) context.Context {
	ctx := composables.WithTx(context.Background(), stubTx{})
	return composables.WithTenantID(ctx, tenantID)
}

type memContainerRepo struct {
	mu    sync.Mutex
	seq   int
	rows  []container.Container
	order map[uuid.UUID]int

	// onCreate, when set, runs before the insert and may return an error
	// to simulate losing a creation race.
	onCreate func(c container.Container) error
}

func newMemContainerRepo() *memContainerRepo {
	return &memContainerRepo{order: map[uuid.UUID]int{}}
}

func (r *memContainerRepo) tenantRows(ctx context.Context) ([]container.Container, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]container.Container, 0, len(r.rows))
	for _, c := range r.rows {
		if c.TenantID() == tenantID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memContainerRepo) GetByID(ctx context.Context, id uuid.UUID) (container.Container, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows, err := r.tenantRows(ctx)
	if err != nil {
		return container.Container{}, err
	}
	for _, c := range rows {
		if c.ID() == id {
			return c, nil
		}
	}
	return container.Container{}, container.ErrNotFound
}

func (r *memContainerRepo) FindByOwner(ctx context.Context, ownerUserID uuid.UUID) ([]container.Container, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows, err := r.tenantRows(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]container.Container, 0, 1)
	for _, c := range rows {
		if owner := c.OwnerUserID(); owner != nil && *owner == ownerUserID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memContainerRepo) FindUnassigned(ctx context.Context) ([]container.Container, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows, err := r.tenantRows(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]container.Container, 0, 1)
	for _, c := range rows {
		if c.Kind() == container.KindUnassigned {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memContainerRepo) GetChildren(ctx context.Context, parentID uuid.UUID) ([]container.Container, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows, err := r.tenantRows(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]container.Container, 0)
	for _, c := range rows {
		if p := c.ParentID(); p != nil && *p == parentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memContainerRepo) GetAll(ctx context.Context) ([]container.Container, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tenantRows(ctx)
}

func (r *memContainerRepo) Create(ctx context.Context, c container.Container) (container.Container, error) {
	if r.onCreate != nil {
		if err := r.onCreate(c); err != nil {
			return container.Container{}, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.rows {
		if existing.TenantID() != c.TenantID() {
			continue
		}
		if owner := c.OwnerUserID(); owner != nil {
			if eo := existing.OwnerUserID(); eo != nil && *eo == *owner {
				return container.Container{}, container.ErrAlreadyExists
			}
			continue
		}
		if c.Kind() == container.KindUnassigned && existing.Kind() == container.KindUnassigned {
			return container.Container{}, container.ErrAlreadyExists
		}
	}

	r.seq++
	stored := container.Hydrate(
		c.TenantID(),
		uuid.New(),
		c.ParentID(),
		c.OwnerUserID(),
		c.Name(),
		c.Description(),
		time.Now().Add(time.Duration(r.seq)*time.Millisecond),
		time.Now(),
	)
	r.rows = append(r.rows, stored)
	r.order[stored.ID()] = r.seq
	return stored, nil
}

func (r *memContainerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return err
	}
	for i, c := range r.rows {
		if c.ID() == id && c.TenantID() == tenantID {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return container.ErrNotFound
}

// seed inserts a fully hydrated row, bypassing uniqueness checks.
func (r *memContainerRepo) seed(c container.Container) container.Container {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	id := c.ID()
	if id == uuid.Nil {
		id = uuid.New()
	}
	stored := container.Hydrate(
		c.TenantID(), id, c.ParentID(), c.OwnerUserID(),
		c.Name(), c.Description(),
		time.Now().Add(time.Duration(r.seq)*time.Millisecond), time.Now(),
	)
	r.rows = append(r.rows, stored)
	r.order[stored.ID()] = r.seq
	return stored
}

type memAssetRepo struct {
	mu   sync.Mutex
	rows []asset.Asset
}

func newMemAssetRepo() *memAssetRepo {
	return &memAssetRepo{}
}

func (r *memAssetRepo) tenantRows(ctx context.Context) ([]asset.Asset, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]asset.Asset, 0, len(r.rows))
	for _, a := range r.rows {
		if a.TenantID() == tenantID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAssetRepo) GetByID(ctx context.Context, id uuid.UUID) (asset.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows, err := r.tenantRows(ctx)
	if err != nil {
		return asset.Asset{}, err
	}
	for _, a := range rows {
		if a.ID() == id {
			return a, nil
		}
	}
	return asset.Asset{}, asset.ErrNotFound
}

func matchesParams(a asset.Asset, params *asset.FindParams) bool {
	if params.ContainerID != uuid.Nil && a.ContainerID() != params.ContainerID {
		return false
	}
	if params.UnassignedOnly && a.Assignment().IsAssigned() {
		return false
	}
	if len(params.AssignedTo) > 0 {
		userID, ok := a.Assignment().UserID()
		if !ok {
			return false
		}
		found := false
		for _, candidate := range params.AssignedTo {
			if candidate == userID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if params.Q != "" {
		q := strings.ToLower(params.Q)
		if !strings.Contains(strings.ToLower(a.Name()), q) &&
			!strings.Contains(strings.ToLower(a.SerialNo()), q) {
			return false
		}
	}
	return true
}

func (r *memAssetRepo) List(ctx context.Context, params *asset.FindParams) ([]asset.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows, err := r.tenantRows(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]asset.Asset, 0, len(rows))
	for _, a := range rows {
		if matchesParams(a, params) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name() != out[j].Name() {
			return out[i].Name() < out[j].Name()
		}
		return out[i].ID().String() < out[j].ID().String()
	})
	if params.Offset > 0 {
		if params.Offset >= len(out) {
			return []asset.Asset{}, nil
		}
		out = out[params.Offset:]
	}
	if params.Limit > 0 && params.Limit < len(out) {
		out = out[:params.Limit]
	}
	return out, nil
}

func (r *memAssetRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows, err := r.tenantRows(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}

func (r *memAssetRepo) CountByContainer(ctx context.Context, containerID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows, err := r.tenantRows(ctx)
	if err != nil {
		return 0, err
	}
	var n int64
	for _, a := range rows {
		if a.ContainerID() == containerID {
			n++
		}
	}
	return n, nil
}

func (r *memAssetRepo) Create(ctx context.Context, a asset.Asset) (asset.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	stored := asset.Hydrate(
		a.TenantID(),
		uuid.New(),
		a.Name(),
		a.Description(),
		a.SerialNo(),
		a.Assignment(),
		a.ContainerID(),
		now,
		now,
	)
	r.rows = append(r.rows, stored)
	return stored, nil
}

func (r *memAssetRepo) Update(ctx context.Context, a asset.Asset) (asset.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.rows {
		if existing.ID() == a.ID() && existing.TenantID() == a.TenantID() {
			stored := asset.Hydrate(
				a.TenantID(), a.ID(), a.Name(), a.Description(), a.SerialNo(),
				a.Assignment(), a.ContainerID(), existing.CreatedAt(), time.Now(),
			)
			r.rows[i] = stored
			return stored, nil
		}
	}
	return asset.Asset{}, asset.ErrNotFound
}

func (r *memAssetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return err
	}
	for i, a := range r.rows {
		if a.ID() == id && a.TenantID() == tenantID {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return asset.ErrNotFound
}

type memMemberRepo struct {
	mu      sync.Mutex
	members map[uuid.UUID]member.Member
}

func newMemMemberRepo() *memMemberRepo {
	return &memMemberRepo{members: map[uuid.UUID]member.Member{}}
}

func (r *memMemberRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (member.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return member.Member{}, err
	}
	m, ok := r.members[userID]
	if !ok || m.TenantID() != tenantID {
		return member.Member{}, member.ErrNotFound
	}
	return m, nil
}

func (r *memMemberRepo) seed(m member.Member) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[m.UserID()] = m
}

type testEnv struct {
	ctx        context.Context
	tenantID   uuid.UUID
	assets     *memAssetRepo
	containers *memContainerRepo
	members    *memMemberRepo
	resolver   *ContainerResolver
	service    *AssetService
	queries    *AssetQueryService
}

func newTestEnv() *testEnv {
	tenantID := uuid.New()
	assets := newMemAssetRepo()
	containers := newMemContainerRepo()
	members := newMemMemberRepo()
	resolver := NewContainerResolver(containers, members)
	bus := eventbus.NewEventPublisher(logrus.New())
	return &testEnv{
		ctx:        testContext(tenantID),
		tenantID:   tenantID,
		assets:     assets,
		containers: containers,
		members:    members,
		resolver:   resolver,
		service:    NewAssetService(assets, containers, members, resolver, bus),
		queries:    NewAssetQueryService(assets, containers),
	}
}

func (e *testEnv) seedMember(name string) uuid.UUID {
	userID := uuid.New()
	e.members.seed(member.Hydrate(e.tenantID, userID, "", "", name, ""))
	return userID
}
