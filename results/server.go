// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package results

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Server exposes a stored run over HTTP. It is read-only.
type Server struct {
	repo ClusterRepository
}

// NewServer returns a server reading from repo.
func NewServer(repo ClusterRepository) *Server {
	return &Server{repo: repo}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/api/bins", s.listBins)
	r.GET("/api/clusters", s.listClusters)
	r.GET("/api/clusters/:bin/:num", s.getCluster)

	return r
}

// Run serves on addr until the listener fails.
func (s *Server) Run(addr string) error {
	log.Printf("Serving clusters on http://%s", addr)

	return s.Router().Run(addr)
}

func (s *Server) listBins(ctx *gin.Context) {
	bins, err := s.repo.ListBins()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	if bins == nil {
		bins = []*BinRecord{}
	}

	ctx.JSON(http.StatusOK, bins)
}

func (s *Server) listClusters(ctx *gin.Context) {
	var bin *int

	if param := ctx.Query("bin"); param != "" {
		n, err := strconv.Atoi(param)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid bin parameter"})

			return
		}

		bin = &n
	}

	minNgal := 0

	if param := ctx.Query("min_ngal"); param != "" {
		n, err := strconv.Atoi(param)
		if err != nil || n < 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_ngal parameter"})

			return
		}

		minNgal = n
	}

	clusters, err := s.repo.ListClusters(bin, minNgal)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	if clusters == nil {
		clusters = []*ClusterRecord{}
	}

	ctx.JSON(http.StatusOK, clusters)
}

// ClusterDetail is a cluster with its members.
type ClusterDetail struct {
	*ClusterRecord
	Members []*MemberRecord `json:"members"`
}

func (s *Server) getCluster(ctx *gin.Context) {
	bin, err := strconv.Atoi(ctx.Param("bin"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid bin"})

		return
	}

	num, err := strconv.Atoi(ctx.Param("num"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid cluster number"})

		return
	}

	cluster, members, err := s.repo.GetCluster(bin, num)
	if errors.Is(err, ErrNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

		return
	}

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, ClusterDetail{ClusterRecord: cluster, Members: members})
}
