package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/uvalib/virgo4-jwt/v4jwt"
)

func (svc *serviceContext) extractHandler(c *gin.Context) {
	cl := clientContext{}
	cl.init(svc, c)

	e := extractContext{}
	e.init(svc, &cl)

	cl.logRequest()
	resp := e.handleExtractRequest()
	cl.logResponse(resp)

	if resp.err != nil {
		c.String(resp.status, resp.err.Error())
		return
	}

	c.JSON(resp.status, resp.data)
}

func (svc *serviceContext) convertHandler(c *gin.Context) {
	cl := clientContext{}
	cl.init(svc, c)

	v := convertContext{}
	v.init(svc, &cl)

	cl.logRequest()
	resp := v.handleConvertRequest()
	cl.logResponse(resp)

	if resp.err != nil {
		c.String(resp.status, resp.err.Error())
		return
	}

	c.JSON(resp.status, resp.data)
}

func (svc *serviceContext) tagsHandler(c *gin.Context) {
	cl := clientContext{}
	cl.init(svc, c)

	localizedTags := cl.localizedTagLabels(svc)

	c.JSON(http.StatusOK, localizedTags)
}

func (svc *serviceContext) ignoreHandler(c *gin.Context) {
}

func (svc *serviceContext) versionHandler(c *gin.Context) {
	cl := clientContext{}
	cl.init(svc, c)

	c.JSON(http.StatusOK, svc.version)
}

func (svc *serviceContext) identifyHandler(c *gin.Context) {
	cl := clientContext{}
	cl.init(svc, c)

	localizedIdentity := cl.localizedIdentity(svc)

	c.JSON(http.StatusOK, localizedIdentity)
}

func (svc *serviceContext) healthCheckHandler(c *gin.Context) {
	cl := clientContext{}
	cl.init(svc, c)

	// build response

	internalServiceError := false

	type hcResp struct {
		Healthy bool   `json:"healthy"`
		Message string `json:"message,omitempty"`
	}

	hcMap := make(map[string]hcResp)

	converters := map[string]string{
		"converter_to_line":   svc.converter.toLineBin,
		"converter_to_binary": svc.converter.toBinaryBin,
	}

	for key, bin := range converters {
		hcConverter := hcResp{Healthy: true}
		if err := svc.converterAvailable(bin); err != nil {
			internalServiceError = true
			hcConverter = hcResp{Healthy: false, Message: err.Error()}
		}
		hcMap[key] = hcConverter
	}

	hcStatus := http.StatusOK
	if internalServiceError == true {
		hcStatus = http.StatusInternalServerError
	}

	c.JSON(hcStatus, hcMap)
}

func getBearerToken(authorization string) (string, error) {
	components := strings.Split(strings.Join(strings.Fields(authorization), " "), " ")

	// must have two components, the first of which is "Bearer", and the second a non-empty token
	if len(components) != 2 || components[0] != "Bearer" || components[1] == "" {
		return "", fmt.Errorf("invalid Authorization header: [%s]", authorization)
	}

	token := components[1]

	if token == "undefined" {
		return "", errors.New("bearer token is undefined")
	}

	return token, nil
}

func (svc *serviceContext) authenticateHandler(c *gin.Context) {
	token, err := getBearerToken(c.GetHeader("Authorization"))
	if err != nil {
		log.Printf("authentication failed: [%s]", err.Error())
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	claims, err := v4jwt.Validate(token, svc.config.Service.JWTKey)

	if err != nil {
		log.Printf("JWT signature for %s is invalid: %s", token, err.Error())
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	c.Set("token", token)
	c.Set("claims", claims)
}
