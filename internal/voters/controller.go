package voters

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type VoterController struct {
	Service *VoterService
}

func (vc *VoterController) Search(c *gin.Context) {
	filter := SearchFilter{
		Lastname:   c.Query("lastname"),
		Firstname:  c.Query("firstname"),
		Middlename: c.Query("middlename"),
		Extension:  c.Query("extension"),
	}

	found, err := vc.Service.Search(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search voters list"})
		return
	}
	c.JSON(http.StatusOK, found)
}
