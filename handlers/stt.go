package handlers

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"clearmind/config"

	speech "cloud.google.com/go/speech/apiv1"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/option"
	speechpb "google.golang.org/genproto/googleapis/cloud/speech/v1"
)

const (
	MaxFileSize      = 5 * 1024 * 1024 // 5MB (conservative buffer)
	AllowedExtension = ".wav"
)

type waveHeader struct {
	RiffTag       [4]byte
	FileSize      uint32
	WaveTag       [4]byte
	FmtTag        [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataTag       [4]byte
	DataSize      uint32
}

func parseWaveHeader(data []byte) (*waveHeader, error) {
	if len(data) < 44 {
		return nil, errors.New("invalid WAV header length")
	}

	var header waveHeader
	buf := bytes.NewReader(data)
	if err := binary.Read(buf, binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	if string(header.RiffTag[:]) != "RIFF" || string(header.WaveTag[:]) != "WAVE" {
		return nil, errors.New("not a WAV file")
	}
	return &header, nil
}

func convertAudio(inputPath, outputPath string) error {
	_, err := exec.LookPath("ffmpeg")
	if err != nil {
		return fmt.Errorf("ffmpeg not found in system PATH: %v", err)
	}

	cmd := exec.Command("ffmpeg",
		"-y",
		"-i", inputPath,
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-ar", "16000",
		outputPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg conversion failed: %s", stderr.String())
	}
	return nil
}

// STTHandler transcribes an uploaded WAV recording with Google STT.
func STTHandler(c *gin.Context) {
	language := c.DefaultPostForm("language", "en-US")

	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "audio file is required",
			"details": err.Error(),
		})
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != AllowedExtension {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid file type",
			"details": fmt.Sprintf("expected %s, got %s", AllowedExtension, ext),
		})
		return
	}

	tempInput, err := os.CreateTemp("", "audio-*.wav")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to create temp file",
			"details": err.Error(),
		})
		return
	}
	defer os.Remove(tempInput.Name())
	defer tempInput.Close()

	if _, err := io.Copy(tempInput, io.LimitReader(file, MaxFileSize)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to save audio file",
			"details": err.Error(),
		})
		return
	}

	tempOutput, err := os.CreateTemp("", "converted-*.wav")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to create output temp file",
			"details": err.Error(),
		})
		return
	}
	defer os.Remove(tempOutput.Name())
	defer tempOutput.Close()

	// Normalize to mono 16kHz PCM before recognition.
	if err := convertAudio(tempInput.Name(), tempOutput.Name()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "audio conversion failed",
			"details": err.Error(),
		})
		return
	}

	audioData, err := os.ReadFile(tempOutput.Name())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to read converted audio",
			"details": err.Error(),
		})
		return
	}

	wav, err := parseWaveHeader(audioData)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid audio data",
			"details": err.Error(),
		})
		return
	}

	ctx := context.Background()
	client, err := speech.NewClient(ctx, option.WithCredentialsFile(config.AppConfig.GoogleServiceAccountFile))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to initialize speech client",
			"details": err.Error(),
		})
		return
	}
	defer client.Close()

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   int32(wav.SampleRate),
			LanguageCode:      language,
			AudioChannelCount: int32(wav.NumChannels),
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{
				Content: audioData,
			},
		},
	}

	resp, err := client.Recognize(ctx, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "speech recognition failed",
			"details": err.Error(),
		})
		return
	}

	var transcript strings.Builder
	for _, result := range resp.Results {
		for _, alt := range result.Alternatives {
			transcript.WriteString(alt.Transcript + " ")
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"transcription": strings.TrimSpace(transcript.String()),
	})
}
