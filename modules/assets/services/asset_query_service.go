package services

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/stocktakehq/stocktake/modules/assets/domain/aggregates/asset"
	"github.com/stocktakehq/stocktake/modules/assets/domain/aggregates/container"
	"github.com/stocktakehq/stocktake/pkg/composables"
)

// Filter narrows a listing. ContainerID of uuid.Nil means "any container";
// a nil AssignedTo means "any assignment", while a non-nil unassigned
// value explicitly matches assets with no user.
type Filter struct {
	ContainerID uuid.UUID
	AssignedTo  *asset.Assignment
	Q           string
	Limit       int
	Offset      int
}

// AssetQueryService resolves a requested container into the effective set
// of assets, flattening one level of department nesting. Results are
// sorted by asset name.
type AssetQueryService struct {
	assets     asset.Repository
	containers container.Repository
}

func NewAssetQueryService(assets asset.Repository, containers container.Repository) *AssetQueryService {
	return &AssetQueryService{
		assets:     assets,
		containers: containers,
	}
}

func (s *AssetQueryService) List(ctx context.Context, f Filter) ([]asset.Asset, error) {
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) ([]asset.Asset, error) {
		return s.list(txCtx, f)
	})
}

// ListContainers returns every container visible to the tenant.
func (s *AssetQueryService) ListContainers(ctx context.Context) ([]container.Container, error) {
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) ([]container.Container, error) {
		return s.containers.GetAll(txCtx)
	})
}

func (s *AssetQueryService) list(ctx context.Context, f Filter) ([]asset.Asset, error) {
	if f.ContainerID == uuid.Nil {
		if f.AssignedTo == nil {
			return s.assets.List(ctx, s.params(f))
		}
		return s.listByAssignment(ctx, *f.AssignedTo, f)
	}

	c, err := s.containers.GetByID(ctx, f.ContainerID)
	if err != nil {
		return nil, err
	}

	if f.AssignedTo != nil {
		// Guard against cross-container leakage: inside a department,
		// the requested user must own one of its children.
		if c.Kind() == container.KindDepartment {
			owners, err := s.childOwners(ctx, c.ID())
			if err != nil {
				return nil, err
			}
			requested, assigned := f.AssignedTo.UserID()
			if !assigned || !containsUUID(owners, requested) {
				return []asset.Asset{}, nil
			}
		}
		return s.listByAssignment(ctx, *f.AssignedTo, f)
	}

	switch c.Kind() {
	case container.KindUnassigned:
		return s.listUnassignedUnion(ctx, c, f)
	case container.KindUser:
		return s.listByAssignment(ctx, asset.AssignedTo(*c.OwnerUserID()), f)
	default:
		owners, err := s.childOwners(ctx, c.ID())
		if err != nil {
			return nil, err
		}
		if len(owners) == 0 {
			return []asset.Asset{}, nil
		}
		params := s.params(f)
		params.AssignedTo = owners
		return s.assets.List(ctx, params)
	}
}

// listUnassignedUnion applies the primary rule (no assigned user) unioned
// with assets whose stored container still points at the singleton but
// whose assignment drifted to non-null, de-duplicated by asset id.
func (s *AssetQueryService) listUnassignedUnion(ctx context.Context, singleton container.Container, f Filter) ([]asset.Asset, error) {
	// Rows from the two legs interleave after the merge, so paging has to
	// happen on the merged result. Each leg fetches the full window up to
	// offset+limit and the slice below cuts out the requested page.
	window := 0
	if f.Limit > 0 {
		window = f.Offset + f.Limit
	}

	params := s.params(f)
	params.UnassignedOnly = true
	params.Limit = window
	params.Offset = 0
	primary, err := s.assets.List(ctx, params)
	if err != nil {
		return nil, err
	}

	byContainer := s.params(f)
	byContainer.ContainerID = singleton.ID()
	byContainer.Limit = window
	byContainer.Offset = 0
	fallback, err := s.assets.List(ctx, byContainer)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(primary))
	merged := make([]asset.Asset, 0, len(primary)+len(fallback))
	for _, a := range primary {
		seen[a.ID()] = struct{}{}
		merged = append(merged, a)
	}
	for _, a := range fallback {
		if _, ok := seen[a.ID()]; ok {
			continue
		}
		merged = append(merged, a)
	}

	sortByName(merged)
	if f.Offset > 0 {
		if f.Offset >= len(merged) {
			return []asset.Asset{}, nil
		}
		merged = merged[f.Offset:]
	}
	if f.Limit > 0 && len(merged) > f.Limit {
		merged = merged[:f.Limit]
	}
	return merged, nil
}

func (s *AssetQueryService) listByAssignment(ctx context.Context, a asset.Assignment, f Filter) ([]asset.Asset, error) {
	params := s.params(f)
	if userID, ok := a.UserID(); ok {
		params.AssignedTo = []uuid.UUID{userID}
	} else {
		params.UnassignedOnly = true
	}
	return s.assets.List(ctx, params)
}

// childOwners collects the owner ids of the department's immediate child
// user containers. An empty set means an empty result without touching
// the assets table.
func (s *AssetQueryService) childOwners(ctx context.Context, departmentID uuid.UUID) ([]uuid.UUID, error) {
	children, err := s.containers.GetChildren(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	owners := make([]uuid.UUID, 0, len(children))
	for _, child := range children {
		if owner := child.OwnerUserID(); owner != nil {
			owners = append(owners, *owner)
		}
	}
	return owners, nil
}

func (s *AssetQueryService) params(f Filter) *asset.FindParams {
	return &asset.FindParams{
		Q:      f.Q,
		Limit:  f.Limit,
		Offset: f.Offset,
	}
}

func containsUUID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func sortByName(items []asset.Asset) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Name() != items[j].Name() {
			return items[i].Name() < items[j].Name()
		}
		return items[i].ID().String() < items[j].ID().String()
	})
}
