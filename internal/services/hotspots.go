package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"geo-intel-service/internal/domain"
	"geo-intel-service/internal/platform/obs"
	"geo-intel-service/internal/ports"
)

// Clusterer groups coordinates into clusters of point indexes. Points
// belonging to no cluster (noise) appear in no group. Implementations must
// be deterministic for identical input order.
type Clusterer interface {
	Cluster(points []domain.Coordinate) [][]int
}

// DBSCAN is the density-based clusterer: a point with at least MinPts
// neighbors within EpsMeters (itself included) is a core point, and clusters
// grow through core points. Points reachable only through sparse paths are
// noise.
type DBSCAN struct {
	EpsMeters float64
	MinPts    int
}

// Default radius and density chosen for urban delivery pockets: 500 m keeps
// a cluster walkable-dense, 3 points keeps single repeat customers from
// registering as hotspots.
func DefaultDBSCAN() DBSCAN {
	return DBSCAN{EpsMeters: 500, MinPts: 3}
}

const (
	labelUnvisited = -1
	labelNoise     = -2
)

func (d DBSCAN) Cluster(points []domain.Coordinate) [][]int {
	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = labelUnvisited
	}

	clusterID := 0
	for i := range points {
		if labels[i] != labelUnvisited {
			continue
		}

		neighbors := d.regionQuery(points, i)
		if len(neighbors) < d.MinPts {
			labels[i] = labelNoise
			continue
		}

		labels[i] = clusterID
		// Breadth-first expansion over the density-reachable set.
		queue := append([]int(nil), neighbors...)
		for qi := 0; qi < len(queue); qi++ {
			j := queue[qi]
			if labels[j] == labelNoise {
				labels[j] = clusterID // border point adopted by the cluster
			}
			if labels[j] != labelUnvisited {
				continue
			}
			labels[j] = clusterID

			jn := d.regionQuery(points, j)
			if len(jn) >= d.MinPts {
				queue = append(queue, jn...)
			}
		}
		clusterID++
	}

	groups := make([][]int, clusterID)
	for i, label := range labels {
		if label >= 0 {
			groups[label] = append(groups[label], i)
		}
	}
	return groups
}

// regionQuery returns the indexes within EpsMeters of points[i], including
// i itself.
func (d DBSCAN) regionQuery(points []domain.Coordinate, i int) []int {
	out := make([]int, 0, 8)
	for j := range points {
		if points[i].DistanceMeters(points[j]) <= d.EpsMeters {
			out = append(out, j)
		}
	}
	return out
}

// HotspotAnalyzer clusters historical delivery events into activity
// hotspots and enriches them with nearby points of interest.
type HotspotAnalyzer struct {
	clusterer Clusterer
	places    ports.PlacesProvider

	// Radius for the popular-times membership test and the POI search.
	epsMeters float64
	maxNearby int
}

func NewHotspotAnalyzer(clusterer Clusterer, places ports.PlacesProvider, epsMeters float64, maxNearby int) *HotspotAnalyzer {
	return &HotspotAnalyzer{
		clusterer: clusterer,
		places:    places,
		epsMeters: epsMeters,
		maxNearby: maxNearby,
	}
}

// AnalyzeDeliveryHotspots filters the history batch by timeframe, clusters
// the surviving points, and reports each cluster with its centroid, member
// records, hour-of-day popularity histogram, and nearby places. POI
// enrichment is best-effort: a provider failure leaves the cluster without
// places rather than failing the analysis.
func (a *HotspotAnalyzer) AnalyzeDeliveryHotspots(ctx context.Context, history []domain.DeliveryRecord, timeframe domain.Timeframe) (_ []domain.Cluster, err error) {
	defer obs.Time(ctx, "hotspots.Analyze")(&err)

	cutoff, bounded, err := timeframe.Window(time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("analyze hotspots: %w", err)
	}

	records := make([]domain.DeliveryRecord, 0, len(history))
	for _, rec := range history {
		if err := rec.Location.Validate(); err != nil {
			return nil, fmt.Errorf("analyze hotspots: record at %v: %w", rec.Timestamp, err)
		}
		if bounded && rec.Timestamp.Before(cutoff) {
			continue
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return []domain.Cluster{}, nil
	}

	points := make([]domain.Coordinate, len(records))
	for i, rec := range records {
		points[i] = rec.Location
	}

	groups := a.clusterer.Cluster(points)

	clusters := make([]domain.Cluster, 0, len(groups))
	for _, group := range groups {
		cluster := domain.Cluster{
			Center: meanCoordinate(points, group),
			Points: make([]domain.DeliveryRecord, 0, len(group)),
		}
		for _, idx := range group {
			cluster.Points = append(cluster.Points, records[idx])
			if records[idx].Location.DistanceMeters(cluster.Center) <= a.epsMeters {
				cluster.PopularTimes[records[idx].Timestamp.Hour()]++
			}
		}

		if a.places != nil && a.maxNearby > 0 {
			nearby, perr := a.places.NearbySearch(ctx, cluster.Center, int(a.epsMeters), a.maxNearby)
			if perr != nil {
				log.Printf("hotspot place enrichment failed center=%v err=%v", cluster.Center, perr)
			} else {
				cluster.NearbyPlaces = nearby
			}
		}

		clusters = append(clusters, cluster)
	}

	return clusters, nil
}

func meanCoordinate(points []domain.Coordinate, idxs []int) domain.Coordinate {
	var lat, lng float64
	for _, i := range idxs {
		lat += points[i].Lat
		lng += points[i].Lng
	}
	n := float64(len(idxs))
	return domain.Coordinate{Lat: lat / n, Lng: lng / n}
}
