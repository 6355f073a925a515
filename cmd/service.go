package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// git commit used for this build; supplied at compile time
var gitCommit string

type serviceVersion struct {
	BuildVersion string `json:"build,omitempty"`
	GoVersion    string `json:"go_version,omitempty"`
	GitCommit    string `json:"git_commit,omitempty"`
}

type serviceTranslations struct {
	bundle *i18n.Bundle
}

// ServiceIdentity holds localized information about this service (as returned by the /identify endpoint)
type ServiceIdentity struct {
	Name        string `json:"name,omitempty"`        // localized service name
	Description string `json:"description,omitempty"` // localized service description
}

type serviceMaps struct {
	tagLabelXIDs map[string]string // field tag -> translation ID
	tagOrder     []string          // configured tag order, for stable /api/tags listings
}

type serviceContext struct {
	randomSource *rand.Rand
	config       *serviceConfig
	translations serviceTranslations
	identity     ServiceIdentity
	version      serviceVersion
	converter    converterContext
	titleizer    *titleizeContext
	maps         serviceMaps
}

func (svc *serviceContext) initIdentity() {
	svc.identity = ServiceIdentity{
		Name:        svc.config.Identity.NameXID,
		Description: svc.config.Identity.DescXID,
	}

	log.Printf("[SERVICE] identity.Name        = [%s]", svc.identity.Name)
	log.Printf("[SERVICE] identity.Description = [%s]", svc.identity.Description)
}

func (svc *serviceContext) initVersion() {
	buildVersion := "unknown"
	files, _ := filepath.Glob("buildtag.*")
	if len(files) == 1 {
		buildVersion = strings.Replace(files[0], "buildtag.", "", 1)
	}

	svc.version = serviceVersion{
		BuildVersion: buildVersion,
		GoVersion:    fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH),
		GitCommit:    gitCommit,
	}

	log.Printf("[SERVICE] version.BuildVersion = [%s]", svc.version.BuildVersion)
	log.Printf("[SERVICE] version.GoVersion    = [%s]", svc.version.GoVersion)
	log.Printf("[SERVICE] version.GitCommit    = [%s]", svc.version.GitCommit)
}

func (svc *serviceContext) initTranslations() {
	defaultLang := language.English

	bundle := i18n.NewBundle(defaultLang)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	toml, _ := filepath.Glob("i18n/*.toml")
	for _, f := range toml {
		bundle.MustLoadMessageFile(f)
	}

	svc.translations = serviceTranslations{
		bundle: bundle,
	}
}

func (svc *serviceContext) initConverter() {
	svc.converter = converterContext{
		toLineBin:   svc.config.Converter.ToLineBin,
		toBinaryBin: svc.config.Converter.ToBinaryBin,
		timeout:     integerWithMinimum(svc.config.Converter.Timeout, 5),
	}

	log.Printf("[SERVICE] converter.toLineBin   = [%s]", svc.converter.toLineBin)
	log.Printf("[SERVICE] converter.toBinaryBin = [%s]", svc.converter.toBinaryBin)
	log.Printf("[SERVICE] converter.timeout     = [%d]", svc.converter.timeout)
}

func (svc *serviceContext) initTagLabels() {
	svc.maps.tagLabelXIDs = make(map[string]string)

	for _, entry := range svc.config.TagLabels {
		svc.maps.tagLabelXIDs[entry.Tag] = entry.XID
		svc.maps.tagOrder = append(svc.maps.tagOrder, entry.Tag)
	}
}

func (svc *serviceContext) validateConfig() {
	// ensure the existence and validity of required variables/binaries/translation ids

	invalid := false

	var messageIDs stringValidator
	var miscValues stringValidator
	var executables stringValidator

	miscValues.requireValue(svc.config.Service.Port, "service port")
	miscValues.requireValue(svc.config.Service.JWTKey, "service jwt key")

	messageIDs.requireValue(svc.config.Identity.NameXID, "identity name xid")
	messageIDs.requireValue(svc.config.Identity.DescXID, "identity description xid")

	executables.requireExecutable(svc.config.Converter.ToLineBin, "converter to-line binary")
	executables.requireExecutable(svc.config.Converter.ToBinaryBin, "converter to-binary binary")

	for i, entry := range svc.config.TagLabels {
		prefix := fmt.Sprintf("tag label index %d: ", i)

		messageIDs.setPrefix(prefix)
		miscValues.setPrefix(prefix)

		miscValues.requireValue(entry.Tag, "tag")
		messageIDs.requireValue(entry.XID, "xid")

		if err := validateTag(entry.Tag); entry.Tag != "" && err != nil {
			log.Printf("[VALIDATE] %s%s", prefix, err.Error())
			invalid = true
		}
	}

	// validate xids can actually be translated

	langs := []string{}
	tags := svc.translations.bundle.LanguageTags()

	for _, tag := range tags {
		lang := tag.String()
		langs = append(langs, lang)
		localizer := i18n.NewLocalizer(svc.translations.bundle, lang)
		for _, id := range messageIDs.Values() {
			if _, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: id}); err != nil {
				log.Printf("[VALIDATE] [%s] missing translation for message ID: [%s] (%s)", lang, id, err.Error())
				invalid = true
			}
		}
	}

	// check if anything went wrong anywhere

	if invalid || messageIDs.Invalid() || miscValues.Invalid() || executables.Invalid() {
		log.Printf("[VALIDATE] exiting due to missing/incorrect field value(s) above")
		os.Exit(1)
	}

	log.Printf("[SERVICE] supported languages  = [%s]", strings.Join(langs, ", "))
}

func initializeService(cfg *serviceConfig) *serviceContext {
	svc := serviceContext{}

	svc.config = cfg
	svc.randomSource = rand.New(rand.NewSource(time.Now().UnixNano()))

	svc.titleizer = newTitleizeContext()

	svc.initTranslations()
	svc.initIdentity()
	svc.initVersion()
	svc.initConverter()
	svc.initTagLabels()

	svc.validateConfig()

	return &svc
}
